// health.go — health endpoints QR Studio.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (PostgreSQL и хранилище доступны)
// /metrics — Prometheus метрики
package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/goartstore/qr-studio/internal/config"
)

const (
	serviceName    = "qr-studio"
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// ReadinessChecker — проверка готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status, message string)
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	checkers    map[string]ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик. checkers — имя зависимости → проверка;
// nil-проверка считается fail.
func NewHealthHandler(checkers map[string]ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		checkers:    checkers,
		promHandler: promhttp.Handler(),
	}
}

type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string                       `json:"status"`
	Timestamp string                       `json:"timestamp"`
	Version   string                       `json:"version"`
	Service   string                       `json:"service"`
	Checks    map[string]healthCheckResult `json:"checks,omitempty"`
}

// HealthLive — liveness probe, всегда 200.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    statusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady — readiness probe: 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
		Checks:    make(map[string]healthCheckResult, len(h.checkers)),
	}

	statuses := make([]string, 0, len(h.checkers))
	for name, checker := range h.checkers {
		res := healthCheckResult{Status: statusFail, Message: "не инициализирован"}
		if checker != nil {
			res.Status, res.Message = checker.CheckReady()
		}
		resp.Checks[name] = res
		statuses = append(statuses, res.Status)
	}
	resp.Status = overallStatus(statuses...)

	status := http.StatusOK
	if resp.Status == statusFail {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// overallStatus: хотя бы один fail — fail, хотя бы один degraded — degraded, иначе ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == statusFail {
			return statusFail
		}
		if s == statusDegraded {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return statusDegraded
	}
	return statusOK
}
