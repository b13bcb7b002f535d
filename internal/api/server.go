package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/config"
	"github.com/vaanilabs/docvani/internal/pipeline"
)

// Server is the HTTP API server for docvani.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	pipeline     *analyze.Pipeline
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, p *analyze.Pipeline, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		pipeline:     p,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/documents", s.handleUploadDocument)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/export/csv", s.handleExportCSV)
		r.Get("/api/jobs/{jobID}/export/pdf", s.handleExportPDF)
		r.Get("/api/stats/analysis", s.handleAnalysisStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
