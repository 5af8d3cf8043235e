// Package server exposes the orchestration router over HTTP. Routes live
// under /api/v1 and mirror the capabilities of the router: one-shot
// orchestration, chat, structured code generation, vision analysis, asset
// generation, SSE streaming, repository import, schema provisioning, and
// workspace persistence.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zen-systems/sitesmith/pkg/repofetch"
	"github.com/zen-systems/sitesmith/pkg/router"
	"github.com/zen-systems/sitesmith/pkg/store"
)

// Server wires the orchestrator and its supporting services into HTTP
// handlers. Store and Fetcher are optional; routes that need a missing
// service respond 503.
type Server struct {
	orch    *router.Orchestrator
	store   *store.Store
	fetcher *repofetch.Fetcher
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the workspace persistence routes.
func WithStore(s *store.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithFetcher enables the repository import route.
func WithFetcher(f *repofetch.Fetcher) Option {
	return func(srv *Server) { srv.fetcher = f }
}

// New creates a Server around an orchestrator.
func New(orch *router.Orchestrator, opts ...Option) *Server {
	srv := &Server{orch: orch}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Routes builds the chi router with all endpoints registered.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check, used by load balancers and probes.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orchestrate", s.Orchestrate)
		r.Post("/chat", s.Chat)
		r.Post("/code", s.GenerateCode)
		r.Post("/stream", s.Stream)
		r.Post("/vision", s.AnalyzeVision)
		r.Post("/assets", s.GenerateAsset)
		r.Post("/repo/import", s.ImportRepo)
		r.Post("/provision", s.Provision)

		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", s.CreateWorkspace)
			r.Get("/{id}", s.GetWorkspace)
			r.Patch("/{id}", s.PatchWorkspace)
			r.Post("/{id}/messages", s.AppendMessage)
			r.Get("/{id}/messages", s.ListMessages)
		})
	})

	return r
}
