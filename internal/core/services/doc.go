// Package services contains the application services implementing the
// driving ports. Services orchestrate the driven ports (document source,
// extractor, search engine, history store) and hold no I/O of their own.
package services
