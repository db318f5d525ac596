package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paymint/paymint/internal/adapter/http/handler"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/infrastructure/auth"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SessionHandler  *handler.SessionHandler
	TransferHandler *handler.TransferHandler
	LedgerHandler   *handler.LedgerHandler
	FraudHandler    *handler.FraudHandler
	HealthHandler   *handler.HealthHandler

	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	Logger     zerolog.Logger

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates the HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", cfg.SessionHandler.Create)

		// Everything else requires a session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Get("/me", cfg.SessionHandler.Me)
			r.Get("/me/transactions", cfg.LedgerHandler.History)

			r.Post("/transfers", cfg.TransferHandler.Create)

			r.Route("/transactions/{id}", func(r chi.Router) {
				r.Get("/", cfg.LedgerHandler.Get)
				r.Post("/fraud-report", cfg.FraudHandler.Report)
			})
		})
	})

	return r
}
