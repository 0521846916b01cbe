package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/server/middleware"
	"github.com/jonathan/hirehub/internal/server/ratelimit"
	"github.com/jonathan/hirehub/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	catalog      catalog.Accessor
	store        *store.Store
	submitter    apply.Submitter
	logger       *slog.Logger
	rateLimiter  *ratelimit.Limiter
	closeCatalog func() error
}

// Config holds server configuration
type Config struct {
	Port    int
	Catalog catalog.Accessor
	// Store is the shared listing state. When nil, one is created over Catalog.
	Store     *store.Store
	Submitter apply.Submitter
	Logger    *slog.Logger
	// RateLimit defaults to ratelimit.LoadConfig() when nil.
	RateLimit *ratelimit.Config
	// CloseCatalog releases the catalog on shutdown.
	CloseCatalog func() error
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalog:      cfg.Catalog,
		store:        cfg.Store,
		submitter:    cfg.Submitter,
		logger:       logger,
		closeCatalog: cfg.CloseCatalog,
	}
	if s.store == nil {
		s.store = store.New(cfg.Catalog, store.WithLogger(logger))
	}
	if s.submitter == nil {
		s.submitter = apply.NewSimulatedSubmitter(apply.DefaultSubmitDelay, logger)
	}

	// Initialize rate limiter
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Catalog endpoints
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /locations", s.handleListLocations)
	mux.HandleFunc("GET /filters/options", s.handleFilterOptions)

	// Shared listing state
	mux.HandleFunc("GET /state", s.handleGetState)
	mux.HandleFunc("PATCH /filters", s.handleUpdateFilters)
	mux.HandleFunc("DELETE /filters", s.handleResetFilters)
	mux.HandleFunc("GET /events", s.handleEvents)

	// Applications
	mux.HandleFunc("POST /applications", s.handleSubmitApplication)

	s.handler = middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: /events streams stay open for the life of the client.
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the shared listing state.
func (s *Server) Store() *store.Store {
	return s.store
}

// Bootstrap loads the job collection and the location list.
func (s *Server) Bootstrap(ctx context.Context) ([]string, error) {
	return store.Bootstrap(ctx, s.store, s.catalog)
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
// The initial catalog load runs in the background; until it completes, /state
// reports isLoading.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		locations, err := s.Bootstrap(ctx)
		if err != nil {
			s.logger.Error("initial job load failed", "error", err)
			return
		}
		s.logger.Info("catalog loaded", "jobs", len(s.store.Jobs()), "locations", len(locations))
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter and releases the catalog.
func (s *Server) Close() {
	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeCatalog != nil {
		if err := s.closeCatalog(); err != nil {
			s.logger.Warn("failed to close catalog", "error", err)
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps event streams working through the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		logger := s.logger.With("method", r.Method, "path", r.URL.Path)
		if id, err := middleware.GetRequestID(r); err == nil {
			logger = logger.With("request_id", id.String())
		}

		logger.Debug("request started", "remote", r.RemoteAddr)
		next.ServeHTTP(rec, r)
		logger.Info("request completed", "status", rec.status, "duration", time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a typed error to its status and user-facing message.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request failed", "error", err)
	}

	var invalid *ErrInvalidApplication
	if errors.As(err, &invalid) {
		s.jsonResponse(w, status, map[string]any{
			"error":  publicMessage(err),
			"fields": invalid.Fields,
		})
		return
	}
	s.errorResponse(w, status, publicMessage(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset_at", info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
