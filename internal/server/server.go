// Package server wires the HTTP transport: router, middleware stack and
// route table for the planning API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veldra/planforge/internal/handler"
	"github.com/veldra/planforge/internal/logger"
	"github.com/veldra/planforge/internal/metrics"
	"github.com/veldra/planforge/internal/planner"
)

const (
	maxRequestBytes   = 1 << 20 // 1MB
	readHeaderTimeout = 5 * time.Second
	shutdownLogMsg    = "Server stopping"
)

type Server struct {
	httpServer     *http.Server
	plannerService planner.Service
}

// NewServer builds the router and middleware stack. apiKey guards the
// admin routes; when empty they are not mounted at all.
func NewServer(port int, apiKey string, plannerService planner.Service) *Server {
	r := chi.NewRouter()

	// Middleware executes in order defined (outermost first).
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(maxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Unversioned operational routes.
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(plannerService))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", handler.HandlePlan(plannerService))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handler.HandleGetCatalog(plannerService))
			r.Get("/items", handler.HandleGetItems(plannerService))
			r.Get("/items/{itemID}/recipes", handler.HandleGetItemRecipes(plannerService))
			r.Get("/machines", handler.HandleGetMachines(plannerService))
		})

		if apiKey != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(APIKeyMiddleware(apiKey))
				r.Post("/catalog/reload", handler.HandleReloadCatalog(plannerService))
			})
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		plannerService: plannerService,
	}
}

// Start blocks serving HTTP until the listener fails or Stop is called.
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(shutdownLogMsg)
	return s.httpServer.Shutdown(ctx)
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly; skip them.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}
