// Package server exposes the JSON-over-HTTP request boundary: health,
// single-invoice processing, and row export.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/pipeline"
	"github.com/kiranatools/gst-agent/internal/repository"
)

type Server struct {
	logger    *slog.Logger
	cfg       common.ServerConfig
	processor *pipeline.Processor
	invoices  repository.InvoiceRepository
}

func New(logger *slog.Logger, cfg common.ServerConfig, proc *pipeline.Processor, invoices repository.InvoiceRepository) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, cfg: cfg, processor: proc, invoices: invoices}
}

// Handler wires the routes behind the request-logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/process-invoice", s.handleProcessInvoice)
	mux.HandleFunc("POST /api/export", s.handleExport)
	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "GST agent is running",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), reqID)))
		s.logger.Info("http.request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
