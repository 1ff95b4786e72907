// Package server exposes chart rendering and pick sessions over HTTP.
//
// Routes:
//
//	GET    /healthz                    liveness and version
//	POST   /v1/render                  render a document (?format=&width=&height=&scale=)
//	POST   /v1/sessions                render a document and keep it for picking
//	GET    /v1/sessions/{id}           session metadata
//	GET    /v1/sessions/{id}/svg       the session's SVG
//	GET    /v1/sessions/{id}/pick      what lies under ?x=&y=
//	DELETE /v1/sessions/{id}           drop a session
//
// Documents are posted as the request body, TOML or JSON depending on the
// Content-Type. Errors are JSON bodies carrying an error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/session"
)

// Defaults for Config.
const (
	DefaultAddr         = "localhost:8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultCleanup      = time.Minute
	shutdownTimeout     = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr         string
	SessionTTL   time.Duration
	MaxBodyBytes int64
	// Cleanup is how often expired sessions are dropped.
	Cleanup time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Cleanup <= 0 {
		c.Cleanup = DefaultCleanup
	}
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	sessions session.Store
	logger   *log.Logger
	cfg      Config
	router   chi.Router
}

// New creates a server. A nil store means an in-memory store; a nil
// logger means log.Default().
func New(runner *pipeline.Runner, store session.Store, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if store == nil {
		store = session.NewMemoryStore(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		sessions: store,
		logger:   logger,
		cfg:      cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Get("/svg", s.handleSessionSVG)
				r.Get("/pick", s.handlePick)
				r.Delete("/", s.handleDeleteSession)
			})
		})
	})
	return r
}

// observe reports requests to the server hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully. Expired sessions are cleaned up in the background while it
// runs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if m, ok := s.sessions.(*session.MemoryStore); ok {
		go m.Run(ctx, s.cfg.Cleanup)
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
