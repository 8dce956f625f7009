package registry

import "github.com/prometheus/client_golang/prometheus"

func useGlobalInTest() {
	prometheus.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total"}))
}
