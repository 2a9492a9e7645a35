package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, metrics *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/api/users/{id}")

	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	assert.Contains(t, body, `console_http_requests_total{code="418",route="/api/users/{id}"} 1`)
	assert.Contains(t, body, `console_http_request_duration_seconds_bucket{route="/api/users/{id}"`)
}

func TestObserveUserMutation(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveUserMutation("create")
	metrics.ObserveUserMutation("create")
	metrics.ObserveUserMutation("delete_many")

	body := scrape(t, metrics)
	assert.Contains(t, body, `console_user_mutations_total{op="create"} 2`)
	assert.Contains(t, body, `console_user_mutations_total{op="delete_many"} 1`)
}

func TestRegistererExposesCollectors(t *testing.T) {
	metrics := NewMetrics()
	metrics.Registerer().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "console_test_gauge",
		Help: "Gauge registered through Registerer.",
	}, func() float64 { return 7 }))

	assert.Contains(t, scrape(t, metrics), "console_test_gauge 7")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveUserMutation("create")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, metrics.Middleware(next))

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
