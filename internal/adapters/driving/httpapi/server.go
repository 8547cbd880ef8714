// Package httpapi exposes the driving ports over HTTP. Routing is handled
// by chi; every response body is JSON.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/docfind/internal/core/ports/driving"
)

// Server bundles the API handlers with their services.
type Server struct {
	indexer   driving.Indexer
	searcher  driving.Searcher
	inspector driving.Inspector
}

// NewServer creates the HTTP surface over the given services.
func NewServer(indexer driving.Indexer, searcher driving.Searcher, inspector driving.Inspector) *Server {
	return &Server{
		indexer:   indexer,
		searcher:  searcher,
		inspector: inspector,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/index", s.handleIndex)
	r.Get("/status", s.handleStatus)
	r.Get("/search", s.handleSearch)
	r.Get("/documents/{id}/occurrences", s.handleOccurrences)

	return r
}
