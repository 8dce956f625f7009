package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func declare() {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "ok_total"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	_ = reg.Register(c)
	promauto.With(reg).NewCounter(prometheus.CounterOpts{Name: "factory_total"})

	prometheus.MustRegister(c)                                           // want `prometheus.MustRegister uses the global registry`
	_ = prometheus.Register(c)                                           // want `prometheus.Register uses the global registry`
	prometheus.Unregister(c)                                             // want `prometheus.Unregister uses the global registry`
	_ = prometheus.DefaultRegisterer                                     // want `prometheus.DefaultRegisterer uses the global registry`
	_ = prometheus.DefaultGatherer                                       // want `prometheus.DefaultGatherer uses the global registry`
	promauto.NewCounter(prometheus.CounterOpts{Name: "global_total"})    // want `promauto.NewCounter registers on the global registry`
}
