package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkraev/booking-wizard/internal/observability"
	"github.com/mkraev/booking-wizard/internal/ratelimit"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl *ratelimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(RateLimitMiddleware(rl))

	r.Get("/v1/catalog/countries", h.GetCountries)
	r.Get("/v1/catalog/{destination}", h.GetDestinationCatalog)

	r.Get("/v1/wizard", h.GetWizard)
	r.Post("/v1/wizard/actions", h.DispatchAction)
	r.Get("/v1/wizard/total", h.GetTotal)
	r.Post("/v1/wizard/restore", h.RestoreDraft)

	r.Route("/v1/reservations", func(r chi.Router) {
		r.With(IdempotencyMiddleware).Post("/", h.SaveReservation)
		r.Get("/", h.ListReservations)
		r.Delete("/{id}", h.DeleteReservation)
	})

	r.Post("/v1/export/pdf", h.ExportPDF)
	r.Post("/v1/export/print", h.Print)

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
