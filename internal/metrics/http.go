package metrics

import (
	"slices"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP request metric names.
const (
	RequestsTotalName   = "http_requests_total"
	RequestDurationName = "http_request_duration_seconds"
)

// DefaultBuckets are the request duration boundaries in seconds used when no
// buckets are configured: 0.005 0.01 0.025 0.05 0.1 0.25 0.5 1 2.5 5 10.
var DefaultBuckets = slices.Clone(prometheus.DefBuckets)

// HTTPMetrics groups the request counter and the request duration histogram.
type HTTPMetrics struct {
	Requests *Counter
	Duration *Histogram
}

// NewHTTPMetrics declares the request metrics in reg. Nil buckets fall back
// to DefaultBuckets.
func NewHTTPMetrics(reg *Registry, buckets []float64) (*HTTPMetrics, error) {
	if buckets == nil {
		buckets = DefaultBuckets
	}

	requests, err := reg.RegisterCounter(RequestsTotalName, "Total HTTP Requests", "method", "endpoint", "status")
	if err != nil {
		return nil, err
	}
	duration, err := reg.RegisterHistogram(RequestDurationName, "HTTP Request Duration", buckets, "method", "endpoint")
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{Requests: requests, Duration: duration}, nil
}

// Record counts one finished request and observes its duration. The counter
// is always incremented; only the observation can be rejected.
func (m *HTTPMetrics) Record(method, endpoint string, status int, elapsed time.Duration) error {
	m.Requests.Inc(method, endpoint, strconv.Itoa(status))
	return m.Duration.Observe(elapsed.Seconds(), method, endpoint)
}
