package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pfrederiksen/stadium-fixtures/internal/board"
	"github.com/pfrederiksen/stadium-fixtures/internal/export"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
	"github.com/pfrederiksen/stadium-fixtures/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// Server serves the board held by a board.Holder
type Server struct {
	holder     *board.Holder
	loader     *board.Loader
	dispatcher *export.Dispatcher
	metrics    *metrics.Manager
	log        *logger.Logger
	location   *time.Location
	router     chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithClassifier sets how mobile clients are recognised
func WithClassifier(c export.Classifier) Option {
	return func(s *Server) {
		s.dispatcher = export.NewDispatcher(c)
	}
}

// WithMetrics enables request and export metrics and the /metrics route
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the request logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLocation sets the zone kickoff times are shown in on the cards page
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.location = loc
		}
	}
}

// New creates a Server. loader is used by the refresh routes.
func New(holder *board.Holder, loader *board.Loader, opts ...Option) *Server {
	s := &Server{
		holder:     holder,
		loader:     loader,
		dispatcher: export.NewDispatcher(nil),
		log:        logger.Default(),
		location:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.countRequests)

	r.Get("/", s.handleIndex)
	r.Post("/refresh", s.handleRefreshPage)
	r.Get("/healthz", handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors)
		r.Get("/stadium", s.handleStadium)
		r.Get("/matches", s.handleMatches)
		r.Get("/matches/{id}/calendar.ics", s.handleMatchCalendar)
		r.Get("/matches/{id}/export", s.handleMatchExport)
		r.Get("/calendar.ics", s.handleCombinedCalendar)
		r.Post("/refresh", s.handleRefresh)
	})

	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", logger.Fields{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("HTTP server shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}
