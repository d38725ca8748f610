// Package metrics exposes handoff activity as prometheus counters.
package metrics

import (
	"io"

	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics counts handoff transitions. It implements handoff.Observer.
type Metrics struct {
	registry *prometheus.Registry

	DeliveriesTotal   prometheus.Counter
	ImplementorsTotal prometheus.Counter
	ParkedTotal       prometheus.Counter
	OverwrittenTotal  prometheus.Counter
	DrainedTotal      prometheus.Counter
	Pending           prometheus.Gauge
}

var _ handoff.Observer = (*Metrics)(nil)

// New registers the handoff counters on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DeliveriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "implx_handoff_deliveries_total",
			Help: "Total number of implementor sets delivered to the index consumer",
		}),
		ImplementorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "implx_handoff_implementors_total",
			Help: "Total number of implementor entries delivered to the index consumer",
		}),
		ParkedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "implx_handoff_parked_total",
			Help: "Total number of implementor sets parked because no consumer was installed",
		}),
		OverwrittenTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "implx_handoff_overwritten_total",
			Help: "Total number of parked implementor sets lost to a later producer",
		}),
		DrainedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "implx_handoff_drained_total",
			Help: "Total number of parked implementor sets taken by a drain",
		}),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "implx_handoff_pending",
			Help: "Current number of parked implementor sets",
		}),
	}
}

// Registry returns the registry the counters live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Delivered(d types.Delivery) {
	m.DeliveriesTotal.Inc()
	m.ImplementorsTotal.Add(float64(d.Implementors.Count()))
}

func (m *Metrics) Parked(types.Delivery) {
	m.ParkedTotal.Inc()
	m.Pending.Inc()
}

func (m *Metrics) Overwritten(types.Delivery) {
	m.OverwrittenTotal.Inc()
	m.Pending.Dec()
}

func (m *Metrics) Drained(n int) {
	m.DrainedTotal.Add(float64(n))
	m.Pending.Sub(float64(n))
}

// WriteText writes every metric in the prometheus text exposition format
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
