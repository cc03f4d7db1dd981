package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
)

// New initializes the server with its default routers.
func New(l hclog.Logger) (*Server, error) {
	s := Server{
		l: l.Named("http"),
		r: chi.NewRouter(),
		n: &http.Server{ReadHeaderTimeout: 10 * time.Second},
	}

	s.r.Use(middleware.RequestID)
	s.r.Use(s.logRequests)
	s.r.Use(middleware.Recoverer)
	s.r.Use(middleware.Heartbeat("/healthz"))

	s.r.Get("/", s.rootIndex)

	return &s, nil
}

// Serve binds, initializes the mux, and serves until Shutdown is
// called.
func (s *Server) Serve(bind string) error {
	s.l.Info("HTTP is starting", "bind", bind)
	s.n.Addr = bind
	s.n.Handler = s.r
	if err := s.n.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.n.Shutdown(ctx)
}

// Handler exposes the routing tree, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}

func (s *Server) rootIndex(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "superstatus is running, see /api/status for the rollup")
}

// Mount attaches a set of routes to the subpath specified by the path
// argument.
func (s *Server) Mount(path string, router chi.Router) {
	s.r.Mount(path, router)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.l.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request-id", middleware.GetReqID(r.Context()))
	})
}
