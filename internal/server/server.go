package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ppedin/wikibase-api/internal/ingest"
	"github.com/ppedin/wikibase-api/internal/metrics"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// shutdownTimeout bounds how long in-flight requests may finish after Run's context ends.
const shutdownTimeout = 10 * time.Second

// multipartOverhead is added to the upload limit to leave room for form fields and boundaries.
const multipartOverhead = 64 << 10

// Server serves the validation API.
type Server struct {
	pipeline    *ingest.Pipeline
	logger      wbapi.Logger
	metrics     *metrics.Metrics
	corsOrigins []string
	maxUpload   int64
	handler     http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCORSOrigins sets the origins allowed to call the API. "*" allows any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithMaxUploadBytes limits the size of an uploaded record.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// New creates a server. Panics if pipeline or logger is nil.
func New(pipeline *ingest.Pipeline, logger wbapi.Logger, opts ...Option) *Server {
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &Server{
		pipeline:    pipeline,
		logger:      logger,
		corsOrigins: []string{"*"},
		maxUpload:   wbapi.DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.routes(mux)
	s.handler = s.cors(s.requestID(s.instrument(mux)))
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
