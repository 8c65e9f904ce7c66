// metrics.go — Prometheus HTTP метрики qs_http_*.
// Пути нормализуются, чтобы UUID не раздували кардинальность.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qs_http_requests_total",
			Help: "Общее количество HTTP-запросов к QR Studio",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qs_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к QR Studio в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware считает запросы и их длительность по нормализованному пути.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.status)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath заменяет ID артефакта на {id}:
// /api/v1/artifacts/a1b2... → /api/v1/artifacts/{id}
// /api/v1/artifacts/a1b2.../download → /api/v1/artifacts/{id}/download
// Неизвестные пути сводятся к "other".
func normalizePath(path string) string {
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/api/v1/artifacts", "/api/v1/preview":
		return path
	}

	const artifactsPrefix = "/api/v1/artifacts/"
	rest, ok := strings.CutPrefix(path, artifactsPrefix)
	if !ok || rest == "" {
		return "other"
	}
	_, suffix, _ := strings.Cut(rest, "/")
	switch suffix {
	case "":
		return artifactsPrefix + "{id}"
	case "download":
		return artifactsPrefix + "{id}/download"
	default:
		return "other"
	}
}
