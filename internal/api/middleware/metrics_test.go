package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	r := chi.NewRouter()
	r.Use(RequestMetrics(m))
	r.Get("/api/portfolio/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio/abc", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	count := testutil.ToFloat64(m.Requests.With(prometheus.Labels{
		"method": http.MethodGet,
		"route":  "/api/portfolio/{id}",
		"status": "404",
	}))
	assert.Equal(t, float64(3), count)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}
