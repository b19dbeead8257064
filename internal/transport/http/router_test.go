package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformmetrics "claims/internal/platform/metrics"
	"claims/internal/platform/middleware"
)

type pingRoutes struct{}

func (pingRoutes) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (middleware.Decision, error) {
	return middleware.Decision{}, nil
}

func newTestRouter(t *testing.T, limiter middleware.Limiter, checks map[string]HealthCheck) (http.Handler, *platformmetrics.Metrics) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := platformmetrics.New(reg)
	h := NewRouter(Deps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  m,
		Gatherer: reg,
		Limiter:  limiter,
		Checks:   checks,
		Routes:   []Registrar{pingRoutes{}},
	})
	return h, m
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRouterServesRoutesAndMetrics(t *testing.T) {
	h, m := newTestRouter(t, nil, nil)

	rr := serve(h, "/ping")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr = serve(h, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))

	rr = serve(h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "claims_http_request_duration_seconds"))
}

func TestRateLimitOnlyGuardsAPI(t *testing.T) {
	h, m := newTestRouter(t, denyAll{}, nil)

	assert.Equal(t, http.StatusTooManyRequests, serve(h, "/ping").Code)
	assert.Equal(t, http.StatusOK, serve(h, "/healthz").Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestReadiness(t *testing.T) {
	h, _ := newTestRouter(t, nil, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})
	rr := serve(h, "/readyz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"postgres":"ok"}`, rr.Body.String())

	h, _ = newTestRouter(t, nil, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	rr = serve(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"postgres":"ok","redis":"connection refused"}`, rr.Body.String())
}
