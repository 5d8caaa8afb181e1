// Package api exposes the document pipeline over HTTP: processing
// endpoints (blocking and queued), stored-file management, and
// monitoring.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/nmodha/docvani/internal/config"
	"github.com/nmodha/docvani/internal/pipeline"
	"github.com/nmodha/docvani/internal/store"
	"github.com/nmodha/docvani/internal/translate"
)

// Version is reported by the health and metrics endpoints.
const Version = "1.0.0"

// FileStore is the slice of the artifact store the API serves directly.
type FileStore interface {
	List(ctx context.Context) ([]store.Record, error)
	Delete(ctx context.Context, id string) error
}

// Server is the HTTP API server for docvani.
type Server struct {
	router       chi.Router
	runner       *pipeline.Runner
	orchestrator *pipeline.Orchestrator
	groq         *translate.GroqClient
	files        FileStore
	log          *slog.Logger
	cfg          config.Config
	start        time.Time
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, orch *pipeline.Orchestrator, groq *translate.GroqClient, files FileStore, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:       runner,
		orchestrator: orch,
		groq:         groq,
		files:        files,
		log:          log,
		cfg:          cfg,
		start:        time.Now(),
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Public monitoring endpoints.
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReady)
	r.Get("/health/live", s.handleLive)
	r.Get("/metrics", s.handleMetrics)

	// Processing endpoints: rate limited, authenticated when a key is
	// configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Use(httprate.LimitByIP(s.cfg.RateLimitRPM, time.Minute))

		r.Post("/process-document", s.handleProcessDocument)
		r.Post("/process-document/async", s.handleProcessDocumentAsync)
		r.Post("/analyze-document", s.handleAnalyzeDocument)
	})

	// File and stats endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/process-document/{jobID}/status", s.handleJobStatus)
		r.Get("/files", s.handleListFiles)
		r.Delete("/files/{fileID}", s.handleDeleteFile)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
