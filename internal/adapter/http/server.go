package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// Service is the assessment layer behind the API. *pipeline.Assessor
// implements it.
type Service interface {
	sharedobs.ReadinessChecker
	Assess(ctx context.Context, c domain.Coordinate) (domain.RiskReport, error)
	Evaluate(c domain.Coordinate, weather *domain.WeatherObservation, events []domain.SeismicEvent) (domain.RiskReport, error)
	Catalog() *catalog.Catalog
}

// Server exposes the risk API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer     *http.Server
	svc            Service
	logger         *slog.Logger
	allowedOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins enables CORS for browser clients on the listed origins.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// NewServer creates an HTTP server with /api/v1 routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, svc Service, logger *slog.Logger, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("GET /api/v1/risk", s.handleAssess)
	mux.HandleFunc("POST /api/v1/risk", s.handleEvaluate)
	mux.HandleFunc("GET /api/v1/regions", s.handleRegions)
	mux.HandleFunc("GET /api/v1/safety", s.handleSafety)
	mux.HandleFunc("GET /api/v1/contacts", s.handleContacts)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/vulnerability", s.handleVulnerability)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := s.withRequestID(s.withRecovery(mux))
	if len(s.allowedOrigins) > 0 {
		handler = cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", HeaderRequestID},
			ExposedHeaders: []string{HeaderRequestID},
			MaxAge:         300,
		})(handler)
	}
	s.httpServer.Handler = handler
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
