package registry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejection reasons used as the "reason" label.
const (
	reasonInvalid   = "invalid"
	reasonDuplicate = "duplicate"
	reasonConflict  = "conflict"
	reasonOther     = "other"
)

// metrics holds the registry's prometheus collectors. A nil *metrics is valid
// and records nothing.
type metrics struct {
	nodesRegistered prometheus.Counter
	rejections      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		nodesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trayprefs",
			Subsystem: "registry",
			Name:      "nodes_registered_total",
			Help:      "Configuration nodes committed to the registry.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trayprefs",
			Subsystem: "registry",
			Name:      "registrations_rejected_total",
			Help:      "Registration batches rejected by the registry.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.nodesRegistered, m.rejections)
	}
	return m
}

func (m *metrics) registered(n int) {
	if m == nil {
		return
	}
	m.nodesRegistered.Add(float64(n))
}

func (m *metrics) rejected(err error) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidNode):
		return reasonInvalid
	case errors.Is(err, ErrAlreadyRegistered):
		return reasonDuplicate
	case errors.Is(err, ErrPropertyConflict):
		return reasonConflict
	default:
		return reasonOther
	}
}
