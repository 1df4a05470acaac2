// Package httpapi exposes a loaded ocean heat content series and its statistics over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aouyang1/go-oceanheat"
	"github.com/aouyang1/go-oceanheat/impact"
	"github.com/aouyang1/go-oceanheat/yearseries"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Analyzer is the part of oceanheat.Analyzer the HTTP layer depends on.
type Analyzer interface {
	Loaded() bool
	Series() (*yearseries.YearSeries, error)
	ImpactStats() (*impact.Stats, error)
	PersonalImpact(birthYear int) (*impact.Personal, error)
	Report(birthYear *int) (*oceanheat.Report, error)
	Reload(ctx context.Context) (*impact.Stats, error)
	RenderChart(w io.Writer) error
	ErrorMessage(err error) string
}

// Server serves the analyzer's data. Every request reads the currently loaded series.
type Server struct {
	analyzer Analyzer
	logger   *zap.SugaredLogger
	router   *mux.Router
	server   http.Server
}

// New creates a Server listening on addr once Run is called.
func New(a Analyzer, addr string, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		analyzer: a,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.routes()
	s.server = http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware, s.loggingMiddleware)

	s.router.HandleFunc("/api/series", s.getSeries).Methods(http.MethodGet)
	s.router.HandleFunc("/api/stats", s.getStats).Methods(http.MethodGet)
	s.router.HandleFunc("/api/personal/{year}", s.getPersonal).Methods(http.MethodGet)
	s.router.HandleFunc("/api/report", s.getReport).Methods(http.MethodGet)
	s.router.HandleFunc("/api/reload", s.postReload).Methods(http.MethodPost)

	s.router.HandleFunc("/chart", s.getChart).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled and then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("starting http server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed, %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, req)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		s.logger.Debugw("http request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"size", rec.size,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", w.Header().Get(RequestIDHeader),
		)
	})
}
