package promauto

import "github.com/prometheus/client_golang/prometheus"

type Factory struct{}

func With(prometheus.Registerer) Factory { return Factory{} }

func (Factory) NewCounter(opts prometheus.CounterOpts) *prometheus.Counter {
	return prometheus.NewCounter(opts)
}

func NewCounter(opts prometheus.CounterOpts) *prometheus.Counter {
	return prometheus.NewCounter(opts)
}
