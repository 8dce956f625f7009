// Package metrics holds the process metrics registry and renders it in the
// Prometheus text exposition format.
//
// Values are stored in client_golang vectors registered into a private
// prometheus.Registry. The registry remembers the declaration order of every
// family's label keys so that rendered samples list labels the way they were
// declared, e.g. http_requests_total{method="GET",endpoint="/",status="200"}.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registration and observation errors.
var (
	ErrConflictingDeclaration = errors.New("conflicting metric declaration")
	ErrInvalidBuckets         = errors.New("invalid histogram buckets")
	ErrReservedLabel          = errors.New("reserved label key")
	ErrInvalidObservation     = errors.New("invalid observation")
)

// Kind is the exposition type of a metric family.
type Kind string

// Metric kinds.
const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
)

// family describes one declared metric family.
type family struct {
	name      string
	help      string
	kind      Kind
	labelKeys []string
	buckets   []float64
	handle    any
}

// signature describes the family for conflict errors, e.g.
// "histogram[method endpoint] buckets [0.1 1]".
func (f *family) signature() string {
	if f.kind == KindHistogram {
		return fmt.Sprintf("%s%v buckets %v", f.kind, f.labelKeys, f.buckets)
	}
	return fmt.Sprintf("%s%v", f.kind, f.labelKeys)
}

// Registry holds all declared metric families of the process.
type Registry struct {
	mu       sync.Mutex
	reg      *prometheus.Registry
	families map[string]*family
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		reg:      prometheus.NewRegistry(),
		families: make(map[string]*family),
	}
}

// RegisterCounter declares a counter family with the given ordered label keys.
// Declaring the same name again with the same label keys returns the existing
// handle; any other redeclaration fails with ErrConflictingDeclaration.
func (r *Registry) RegisterCounter(name, help string, labelKeys ...string) (*Counter, error) {
	labelKeys = slices.Clone(labelKeys)
	h, err := r.declare(&family{name: name, help: help, kind: KindCounter, labelKeys: labelKeys}, func() (prometheus.Collector, any) {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labelKeys)
		return vec, &Counter{name: name, labelKeys: labelKeys, vec: vec}
	})
	if err != nil {
		return nil, err
	}
	return h.(*Counter), nil
}

// RegisterGauge declares a gauge family with the given ordered label keys.
func (r *Registry) RegisterGauge(name, help string, labelKeys ...string) (*Gauge, error) {
	labelKeys = slices.Clone(labelKeys)
	h, err := r.declare(&family{name: name, help: help, kind: KindGauge, labelKeys: labelKeys}, func() (prometheus.Collector, any) {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labelKeys)
		return vec, &Gauge{name: name, labelKeys: labelKeys, vec: vec}
	})
	if err != nil {
		return nil, err
	}
	return h.(*Gauge), nil
}

// RegisterHistogram declares a histogram family. Buckets must be strictly
// increasing and finite; a trailing +Inf is accepted and dropped since the
// +Inf bucket is always rendered.
func (r *Registry) RegisterHistogram(name, help string, buckets []float64, labelKeys ...string) (*Histogram, error) {
	bounds, err := normalizeBuckets(buckets)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	labelKeys = slices.Clone(labelKeys)
	if slices.Contains(labelKeys, "le") {
		return nil, fmt.Errorf("%w: histogram %s cannot use label \"le\"", ErrReservedLabel, name)
	}

	h, err := r.declare(&family{name: name, help: help, kind: KindHistogram, labelKeys: labelKeys, buckets: bounds}, func() (prometheus.Collector, any) {
		vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: bounds}, labelKeys)
		return vec, &Histogram{name: name, labelKeys: labelKeys, vec: vec}
	})
	if err != nil {
		return nil, err
	}
	return h.(*Histogram), nil
}

// Register adds an arbitrary collector. Its families are rendered with the
// label order reported by the collector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.reg.Register(c)
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors.
func (r *Registry) RegisterRuntimeCollectors() error {
	if err := r.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("register go collector: %w", err)
	}
	if err := r.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return fmt.Errorf("register process collector: %w", err)
	}
	return nil
}

func (r *Registry) declare(f *family, build func() (prometheus.Collector, any)) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.families[f.name]; ok {
		if existing.kind != f.kind ||
			!slices.Equal(existing.labelKeys, f.labelKeys) ||
			!slices.Equal(existing.buckets, f.buckets) {
			return nil, fmt.Errorf("%w: %s declared as %s, redeclared as %s",
				ErrConflictingDeclaration, f.name, existing.signature(), f.signature())
		}
		return existing.handle, nil
	}

	collector, handle := build()
	if err := r.reg.Register(collector); err != nil {
		return nil, fmt.Errorf("register %s: %w", f.name, err)
	}
	f.handle = handle
	r.families[f.name] = f
	return handle, nil
}

func normalizeBuckets(buckets []float64) ([]float64, error) {
	bounds := slices.Clone(buckets)
	if n := len(bounds); n > 0 && math.IsInf(bounds[n-1], +1) {
		bounds = bounds[:n-1]
	}
	if len(bounds) == 0 {
		return nil, fmt.Errorf("%w: at least one finite boundary required", ErrInvalidBuckets)
	}
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("%w: boundary %v is not finite", ErrInvalidBuckets, b)
		}
		if i > 0 && b <= bounds[i-1] {
			return nil, fmt.Errorf("%w: boundaries must be strictly increasing, got %v after %v", ErrInvalidBuckets, b, bounds[i-1])
		}
	}
	return bounds, nil
}

// mustMatchArity panics when the number of label values differs from the
// declared label keys.
func mustMatchArity(name string, keys, values []string) {
	if len(keys) != len(values) {
		panic(fmt.Sprintf("metrics: %s expects %d label values %v, got %d %v", name, len(keys), keys, len(values), values))
	}
}

// Counter is a handle to a declared counter family.
type Counter struct {
	name      string
	labelKeys []string
	vec       *prometheus.CounterVec
}

// Inc increments the counter for the given label values by one.
// It panics if the number of values does not match the declared label keys.
func (c *Counter) Inc(labelValues ...string) {
	mustMatchArity(c.name, c.labelKeys, labelValues)
	c.vec.WithLabelValues(labelValues...).Inc()
}

// Gauge is a handle to a declared gauge family.
type Gauge struct {
	name      string
	labelKeys []string
	vec       *prometheus.GaugeVec
}

// Set sets the gauge for the given label values.
func (g *Gauge) Set(value float64, labelValues ...string) {
	mustMatchArity(g.name, g.labelKeys, labelValues)
	g.vec.WithLabelValues(labelValues...).Set(value)
}

// Histogram is a handle to a declared histogram family.
type Histogram struct {
	name      string
	labelKeys []string
	vec       *prometheus.HistogramVec
}

// Observe records value for the given label values. Negative and NaN values
// are rejected with ErrInvalidObservation and leave the histogram untouched.
// It panics if the number of values does not match the declared label keys.
func (h *Histogram) Observe(value float64, labelValues ...string) error {
	mustMatchArity(h.name, h.labelKeys, labelValues)
	if value < 0 || math.IsNaN(value) {
		return fmt.Errorf("%w: %s got %v", ErrInvalidObservation, h.name, value)
	}
	h.vec.WithLabelValues(labelValues...).Observe(value)
	return nil
}
