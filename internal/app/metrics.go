package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// initCounters counts initializer outcomes during Start.
type initCounters struct {
	succeeded prometheus.Counter
	failed    prometheus.Counter
}

func newInitCounters(reg prometheus.Registerer) *initCounters {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trayprefs",
		Subsystem: "app",
		Name:      "initializers_total",
		Help:      "Initializers run during startup, by result.",
	}, []string{"result"})
	reg.MustRegister(vec)

	return &initCounters{
		succeeded: vec.WithLabelValues("ok"),
		failed:    vec.WithLabelValues("error"),
	}
}
