package search

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "numexpr"
	metricsSubsystem = "search"
)

// Metrics counts the work done by a Search. A nil *Metrics records
// nothing.
type Metrics struct {
	Subsets      prometheus.Counter
	Combinations prometheus.Counter
	Duplicates   prometheus.Counter
	Reachable    prometheus.Gauge
}

// NewMetrics creates search metrics and registers them with reg when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Subsets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "subsets_total",
			Help:      "Position sets whose reachable expressions were computed",
		}),
		Combinations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "combinations_total",
			Help:      "Operator applications tried",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "duplicates_total",
			Help:      "Combinations whose canonical text was already known",
		}),
		Reachable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "reachable_nodes",
			Help:      "Distinct canonical expressions using every input",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Subsets, m.Combinations, m.Duplicates, m.Reachable)
	}
	return m
}

func (m *Metrics) subsets(n int) {
	if m != nil {
		m.Subsets.Add(float64(n))
	}
}

func (m *Metrics) combination() {
	if m != nil {
		m.Combinations.Inc()
	}
}

func (m *Metrics) duplicate() {
	if m != nil {
		m.Duplicates.Inc()
	}
}

func (m *Metrics) reachable(n int) {
	if m != nil {
		m.Reachable.Set(float64(n))
	}
}
