package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagates incoming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.RemoteAddr = "[::1]:5555"
	assert.Equal(t, "::1", ClientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.7")
	assert.Equal(t, "192.0.2.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

type recordingObserver struct {
	route, method, status string
}

func (o *recordingObserver) ObserveRequest(route, method, status string, _ float64) {
	o.route, o.method, o.status = route, method, status
}

func TestLoggerReportsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	obs := &recordingObserver{}

	r := chi.NewRouter()
	r.Use(RequestID, Logger(logger, obs))
	r.Get("/covers/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/covers/abc", nil))

	assert.Equal(t, "/covers/{id}", obs.route)
	assert.Equal(t, http.MethodGet, obs.method)
	assert.Equal(t, "404", obs.status)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, float64(404), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRecover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}

type stubLimiter struct {
	decision Decision
	err      error
}

func (s stubLimiter) Allow(context.Context, string) (Decision, error) {
	return s.decision, s.err
}

type countingCounter struct{ n int }

func (c *countingCounter) IncRateLimited() { c.n++ }

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects with retry-after", func(t *testing.T) {
		counter := &countingCounter{}
		h := RateLimit(stubLimiter{decision: Decision{RetryAfter: 1500 * time.Millisecond}}, discardLogger(), counter)(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/covers", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Equal(t, 1, counter.n)
	})

	t.Run("allows", func(t *testing.T) {
		h := RateLimit(stubLimiter{decision: Decision{Allowed: true}}, discardLogger(), nil)(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/covers", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("fails open on limiter error", func(t *testing.T) {
		h := RateLimit(stubLimiter{err: errors.New("redis down")}, discardLogger(), nil)(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/covers", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLocalLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for range 2 {
		d, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}

	d, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Second, d.RetryAfter)

	d, _ = l.Allow(ctx, "b")
	assert.True(t, d.Allowed, "keys are independent")

	now = now.Add(time.Second)
	d, _ = l.Allow(ctx, "a")
	assert.True(t, d.Allowed, "bucket refills")

	now = now.Add(time.Hour)
	l.Cleanup()
	l.mu.Lock()
	assert.Empty(t, l.entries)
	l.mu.Unlock()
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2026, 3, 1, 12, 0, 0, 250_000_000, time.UTC)
	l := NewRedisLimiter(rdb, 2, time.Second)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for range 2 {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 750*time.Millisecond, d.RetryAfter)

	now = now.Add(time.Second)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "new window")
}

func TestRedisLimiterUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	_, err := NewRedisLimiter(rdb, 2, time.Second).Allow(context.Background(), "k")
	assert.Error(t, err)
}
