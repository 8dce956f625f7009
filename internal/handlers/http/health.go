package http

import (
	"net/http"
	"time"

	"github.com/sbilibin2017/demoapp/internal/models"
)

//go:generate mockgen -source=health.go -destination=health_mock.go -package=http

// ReadinessChecker reports whether the server accepts traffic.
type ReadinessChecker interface {
	IsReady() bool
}

// NewHealthHandler handles the liveness probe.
//
// @Summary Liveness probe
// @Description Reports that the process is up
// @Tags probes
// @Produce json
// @Success 200 {object} models.Health
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Health{
			Status:    models.StatusHealthy,
			Timestamp: unixSeconds(time.Now()),
			Checks: map[string]string{
				"application":  models.CheckOK,
				"dependencies": models.CheckOK,
			},
		})
	}
}

// NewReadyHandler handles the readiness probe. It answers 503 while the
// server is starting or draining.
//
// @Summary Readiness probe
// @Description Reports whether the server accepts traffic
// @Tags probes
// @Produce json
// @Success 200 {object} models.Readiness
// @Failure 503 {object} models.Readiness
// @Router /ready [get]
func NewReadyHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := unixSeconds(time.Now())
		if !checker.IsReady() {
			writeJSON(w, http.StatusServiceUnavailable, models.Readiness{Status: models.StatusNotReady, Timestamp: now})
			return
		}
		writeJSON(w, http.StatusOK, models.Readiness{Status: models.StatusReady, Timestamp: now})
	}
}
