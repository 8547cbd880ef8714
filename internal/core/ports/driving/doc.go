// Package driving defines the interfaces through which external actors
// (CLI, HTTP API) drive the core services.
package driving
