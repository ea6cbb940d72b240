package editlock

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "homedash"

// Metrics exports registry activity to Prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	acquires *prometheus.CounterVec
	releases prometheus.Counter
	expiries prometheus.Counter
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		acquires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "editlock",
			Name:      "acquire_total",
			Help:      "Lock acquisition attempts by result.",
		}, []string{"result"}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "editlock",
			Name:      "release_total",
			Help:      "Locks released by their owner.",
		}),
		expiries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "editlock",
			Name:      "expired_total",
			Help:      "Stale locks removed by the reaper.",
		}),
	}
}

// Register adds the collectors to reg, plus a gauge reporting the number of
// live locks held in r.
func (m *Metrics) Register(reg prometheus.Registerer, r *Registry) error {
	live := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "editlock",
		Name:      "live_locks",
		Help:      "Dashboards currently locked for editing.",
	}, func() float64 { return float64(len(r.ListLive())) })

	for _, c := range []prometheus.Collector{m.acquires, m.releases, m.expiries, live} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("registering editlock metric: %w", err)
		}
	}
	return nil
}

func (m *Metrics) acquireGranted() {
	if m != nil {
		m.acquires.WithLabelValues("granted").Inc()
	}
}

func (m *Metrics) acquireDenied() {
	if m != nil {
		m.acquires.WithLabelValues("denied").Inc()
	}
}

func (m *Metrics) acquireForced() {
	if m != nil {
		m.acquires.WithLabelValues("forced").Inc()
	}
}

func (m *Metrics) released() {
	if m != nil {
		m.releases.Inc()
	}
}

func (m *Metrics) expired() {
	if m != nil {
		m.expiries.Inc()
	}
}
