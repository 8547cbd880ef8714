package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// searchResponse is the body of GET /search.
type searchResponse struct {
	Query        string      `json:"query"`
	TotalResults int         `json:"total_results"`
	Results      []searchHit `json:"results"`
}

type searchHit struct {
	FilePath    string              `json:"file_path"`
	Name        string              `json:"name"`
	WebViewLink string              `json:"web_view_link"`
	Score       float64             `json:"score"`
	Highlights  map[string][]string `json:"highlights,omitempty"`
}

// batchResponse is the body of GET /status and POST /index.
type batchResponse struct {
	ID         string `json:"id,omitempty"`
	State      string `json:"state"`
	Attempted  int    `json:"attempted"`
	Succeeded  int    `json:"succeeded"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// occurrencesResponse is the body of GET /documents/{id}/occurrences.
type occurrencesResponse struct {
	FileID string      `json:"file_id"`
	Term   string      `json:"term"`
	Pages  []pageMatch `json:"pages"`
}

type pageMatch struct {
	PageNumber  int          `json:"page_number"`
	Occurrences int          `json:"occurrences"`
	Contexts    []occurrence `json:"contexts"`
}

type occurrence struct {
	Position int    `json:"position"`
	Context  string `json:"context"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "docfind",
		"message": "PDF ingestion and search API",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.searcher.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, err := s.indexer.Trigger(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":   "accepted",
		"batch_id": id,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	batch, err := s.indexer.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBatchResponse(batch))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "size must be an integer"})
			return
		}
		size = parsed
	}

	hits, err := s.searcher.Search(r.Context(), query, size)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]searchHit, 0, len(hits))
	for _, h := range hits {
		results = append(results, searchHit{
			FilePath:    h.FilePath,
			Name:        h.Name,
			WebViewLink: h.WebViewLink,
			Score:       h.Score,
			Highlights:  h.Highlights,
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:        query,
		TotalResults: len(results),
		Results:      results,
	})
}

func (s *Server) handleOccurrences(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	term := r.URL.Query().Get("term")

	matches, err := s.inspector.Occurrences(r.Context(), fileID, term)
	if err != nil {
		writeError(w, err)
		return
	}

	pages := make([]pageMatch, 0, len(matches))
	for _, m := range matches {
		contexts := make([]occurrence, 0, len(m.Contexts))
		for _, c := range m.Contexts {
			contexts = append(contexts, occurrence{Position: c.Position, Context: c.Context})
		}
		pages = append(pages, pageMatch{
			PageNumber:  m.PageNumber,
			Occurrences: m.Occurrences,
			Contexts:    contexts,
		})
	}

	writeJSON(w, http.StatusOK, occurrencesResponse{
		FileID: fileID,
		Term:   term,
		Pages:  pages,
	})
}

func toBatchResponse(b *domain.SyncBatch) batchResponse {
	resp := batchResponse{
		ID:        b.ID,
		State:     string(b.State),
		Attempted: b.Attempted,
		Succeeded: b.Succeeded,
	}
	if !b.StartedAt.IsZero() {
		resp.StartedAt = b.StartedAt.UTC().Format(time.RFC3339)
	}
	if !b.FinishedAt.IsZero() {
		resp.FinishedAt = b.FinishedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
