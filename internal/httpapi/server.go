// Package httpapi exposes the reading-session core as a JSON API for
// the browser client, which streams speech-recognition hypotheses as
// it hears the reader.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/service"

	"go.uber.org/zap"
)

// Server handles the JSON API
type Server struct {
	sessions *service.SessionService
	stats    *service.StatsService
	logger   *zap.Logger
}

// NewServer creates a new API server
func NewServer(sessions *service.SessionService, stats *service.StatsService, logger *zap.Logger) *Server {
	return &Server{
		sessions: sessions,
		stats:    stats,
		logger:   logger,
	}
}

// Routes returns the API routing table
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/hypotheses", s.handleSubmitHypothesis)
	mux.HandleFunc("POST /api/sessions/{id}/skip", s.handleSkip)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /api/sessions/{id}/progress", s.handleProgress)
	mux.HandleFunc("GET /api/sessions/{id}/stats", s.handleStats)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyText), errors.Is(err, domain.ErrInvalidConfidence):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionComplete):
		status = http.StatusConflict
	default:
		s.logger.Error("Request failed", zap.Error(err))
		s.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
