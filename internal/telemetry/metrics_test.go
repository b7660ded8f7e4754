package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripType(t *testing.T) {
	assert.Equal(t, "international", TripType(true))
	assert.Equal(t, "domestic", TripType(false))
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/api/v1/trips/{flightID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trips/flt_123", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var routes []string
	for _, mf := range families {
		if mf.GetName() != "tripplan_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["status"] == "418" {
				routes = append(routes, labels["route"])
			}
		}
	}
	assert.Equal(t, []string{"/api/v1/trips/{flightID}"}, routes)
}
