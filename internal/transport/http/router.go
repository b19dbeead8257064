package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "claims/internal/platform/metrics"
	"claims/internal/platform/middleware"
	"claims/pkg/platform/httputil"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps is everything the router needs. Limiter, Gatherer and Checks are
// optional.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *platformmetrics.Metrics
	Gatherer prometheus.Gatherer
	Limiter  middleware.Limiter
	Checks   map[string]HealthCheck
	Routes   []Registrar
}

// NewRouter wires the middleware chain, the operational endpoints and every
// registered route group. Rate limiting only applies to the API routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	var observer middleware.RequestObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger, observer))
	r.Use(middleware.Recover(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(deps.Checks))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(api chi.Router) {
		if deps.Limiter != nil {
			var counter middleware.RateLimitCounter
			if deps.Metrics != nil {
				counter = deps.Metrics
			}
			api.Use(middleware.RateLimit(deps.Limiter, deps.Logger, counter))
		}
		for _, routes := range deps.Routes {
			routes.Register(api)
		}
	})
	return r
}

func readiness(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, status, results)
	}
}
