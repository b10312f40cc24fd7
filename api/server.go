// Package api - Thin, stateless HTTP layer over the field registry.
// Every request carries the quantity it acts on; the server keeps no
// per-client value.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"quantity-editor/core/field"
	"quantity-editor/internal/logging"
)

// Config holds HTTP server configuration
type Config struct {
	// Addr to listen on
	Addr string `json:"addr"`

	// ReadTimeout for requests
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout time.Duration `json:"write_timeout"`

	// MaxBodySize limits request body size
	MaxBodySize int64 `json:"max_body_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxBodySize:  64 * 1024,
	}
}

// Server is the API server
type Server struct {
	router  *mux.Router
	fields  *field.Registry
	version string
	config  Config
	server  *http.Server
	logger  *zap.Logger

	mu             sync.Mutex
	requestCount   int64
	errorCount     int64
	totalLatencyUs int64
}

// NewServer creates a server over the given fields
func NewServer(version string, fields *field.Registry, cfg Config) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		fields:  fields,
		version: version,
		config:  cfg,
		logger:  logging.Component("api"),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.Use(s.recoveryMiddleware, s.loggingMiddleware, s.limitMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	s.router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	s.router.HandleFunc("/fields", s.handleListFields).Methods(http.MethodGet)
	s.router.HandleFunc("/fields/{name}", s.handleGetField).Methods(http.MethodGet)
	s.router.HandleFunc("/fields/{name}/text", s.handleText).Methods(http.MethodPost)
	s.router.HandleFunc("/fields/{name}/increment", s.handleIncrement).Methods(http.MethodPost)
	s.router.HandleFunc("/fields/{name}/decrement", s.handleDecrement).Methods(http.MethodPost)
	s.router.HandleFunc("/fields/{name}/unit", s.handleUnit).Methods(http.MethodPost)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, "NOT_FOUND", "no route for "+r.URL.Path, http.StatusNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.config.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stats returns the request counters
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Requests: s.requestCount, Errors: s.errorCount}
	if s.requestCount > 0 {
		st.AvgLatencyUs = s.totalLatencyUs / s.requestCount
	}
	return st
}

// Middleware

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		s.mu.Lock()
		s.requestCount++
		if rec.status >= 400 {
			s.errorCount++
		}
		s.totalLatencyUs += elapsed.Microseconds()
		s.mu.Unlock()

		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", err))
				s.writeError(w, "INTERNAL", "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.MaxBodySize > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}
