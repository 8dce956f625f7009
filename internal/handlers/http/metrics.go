package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sbilibin2017/demoapp/internal/metrics"
)

//go:generate mockgen -source=metrics.go -destination=metrics_mock.go -package=http

// Renderer renders the metrics exposition.
type Renderer interface {
	Render() ([]byte, error)
}

// NewMetricsHandler serves the metrics scrape endpoint. It always answers
// 200; a partial render is logged and served as is.
//
// @Summary Metrics scrape
// @Description Prometheus text exposition of the request metrics
// @Tags metrics
// @Produce plain
// @Success 200 {string} string "exposition text"
// @Router /metrics [get]
func NewMetricsHandler(renderer Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := renderer.Render()
		if err != nil {
			log.Warn("partial metrics render", zap.Error(err))
		}

		w.Header().Set("Content-Type", metrics.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	}
}
