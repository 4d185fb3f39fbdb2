// Package server exposes graphkit's conversions over HTTP.
//
// # Endpoints
//
//	GET  /healthz                                    liveness and version
//	POST /v1/convert?from=graphml&to=json&store_ids= convert the request body
//	POST /v1/info?format=graphml                     summarize the request body
//	POST /v1/render?format=graphml&detailed=         render the body as SVG
//
// Bodies larger than the configured limit are rejected with 413. Decoding
// failures are reported as JSON with the error code and, for GraphML, the
// line and column of the offending token.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphkit/pkg/config"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	// MaxBody limits request bodies in bytes, config.DefaultMaxBody when zero.
	MaxBody int64

	// GraphML holds the default id handling; query parameters override it.
	GraphML config.GraphML

	// TTL of cached results, pipeline.DefaultTTL when zero.
	TTL time.Duration
}

// Server is the HTTP conversion service.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server that runs conversions through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBody <= 0 {
		opts.MaxBody = config.DefaultMaxBody
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, opts: opts}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/convert", s.handleConvert)
		r.Post("/info", s.handleInfo)
		r.Post("/render", s.handleRender)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return ctx.Err()
}
