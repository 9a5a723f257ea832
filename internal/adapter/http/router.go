package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/campusledger/internal/adapter/http/handler"
	"github.com/iho/campusledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UploadHandler      *handler.UploadHandler
	StudentHandler     *handler.StudentHandler
	LedgerHandler      *handler.LedgerHandler
	ExpenditureHandler *handler.ExpenditureHandler
	SummaryHandler     *handler.SummaryHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
	RateLimit          float64
	RateBurst          int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/students", func(r chi.Router) {
			r.Post("/upload", cfg.UploadHandler.Upload)
			r.Get("/", cfg.StudentHandler.List)
			r.Get("/{prn}", cfg.StudentHandler.Get)
			r.Delete("/{prn}", cfg.StudentHandler.Deactivate)
			r.Post("/{prn}/entries", cfg.LedgerHandler.AppendEntry)
			r.Post("/{prn}/entries/{receipt}/pay", cfg.LedgerHandler.MarkPaid)
		})

		r.Route("/expenditures", func(r chi.Router) {
			r.Post("/", cfg.ExpenditureHandler.Create)
			r.Get("/", cfg.ExpenditureHandler.List)
			r.Get("/{id}", cfg.ExpenditureHandler.Get)
			r.Put("/{id}", cfg.ExpenditureHandler.Update)
			r.Delete("/{id}", cfg.ExpenditureHandler.Delete)
		})

		r.Get("/summary", cfg.SummaryHandler.GetSummary)
		r.Get("/reports/monthly", cfg.SummaryHandler.GetMonthlyReport)
	})

	return r
}
