package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/citystats/citystats-service/internal/config"
	"github.com/citystats/citystats-service/internal/metrics"
	"github.com/citystats/citystats-service/internal/transport/http/handlers"
	mw "github.com/citystats/citystats-service/internal/transport/http/middleware"
)

// New builds the HTTP surface. limiter may be nil, in which case rate
// limiting stays in-process.
func New(
	h *handlers.StatsHandler,
	z *handlers.HealthHandler,
	limiter mw.Limiter,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.AccessLog)
	if cfg.MetricsEnabled {
		r.Use(mw.Metrics)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.HeaderXRequestID},
		ExposedHeaders: []string{mw.HeaderXRequestID},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if cfg.RLEnabled {
			if limiter == nil {
				r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
			} else {
				r.Use(mw.RateLimit(limiter, cfg.RLLimit, cfg.RLWindow))
			}
		}

		r.Get("/bls_jobs/{place}", h.BLSJobs)
		r.Get("/rent_viz_view/{place}", h.RentViz)
	})

	return r
}
