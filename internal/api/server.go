package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/catalogkit/lcsh-assistant/internal/config"
	"github.com/catalogkit/lcsh-assistant/internal/gemini"
	"github.com/catalogkit/lcsh-assistant/internal/pipeline"
)

// Server is the HTTP surface: a JSON API plus a small embedded form UI.
type Server struct {
	router    chi.Router
	pipeline  *pipeline.Pipeline
	generator *gemini.Generator
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(p *pipeline.Pipeline, gen *gemini.Generator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline:  p,
		generator: gen,
		log:       log,
		cfg:       cfg,
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

	r.Get("/health", s.handleHealth)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleForm)

	r.Post("/api/recommend", s.handleRecommend)
	r.Get("/api/stats/llm", s.handleLLMStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
