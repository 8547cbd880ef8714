// Package driven defines the interfaces the core depends on.
// Adapters (search backend, remote source, extractors, storage)
// implement these interfaces.
package driven
