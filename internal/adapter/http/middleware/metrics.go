
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths to avoid high cardinality.
func normalizePath(path string) string {
	// Collapse record identifiers so every student or expenditure does not
	// become its own label value.
	// /api/v1/students/PRN2024001/entries -> /api/v1/students/:prn/entries
	prefixes := []struct {
		prefix      string
		placeholder string
	}{
		{"/api/v1/students/", ":prn"},
		{"/api/v1/expenditures/", ":id"},
	}

	for _, p := range prefixes {
		if len(path) <= len(p.prefix) || path[:len(p.prefix)] != p.prefix {
			continue
		}
		if path[len(p.prefix)] == '/' {
			continue
		}

		suffix := ""
		for i := len(p.prefix); i < len(path); i++ {
			if path[i] == '/' {
				suffix = path[i:]
				break
			}
		}

		return p.prefix + p.placeholder + normalizeEntrySuffix(suffix)
	}

	return path
}

// normalizeEntrySuffix collapses receipt numbers in nested entry paths.
// /entries/RCP-20260101-00001/pay -> /entries/:receipt/pay
func normalizeEntrySuffix(suffix string) string {
	const marker = "/entries/"
	if len(suffix) <= len(marker) || suffix[:len(marker)] != marker {
		return suffix
	}

	rest := ""
	for i := len(marker); i < len(suffix); i++ {
		if suffix[i] == '/' {
			rest = suffix[i:]
			break
		}
	}

	return marker + ":receipt" + rest
}
