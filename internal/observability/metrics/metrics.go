package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes application counters on the default prometheus registry.
type Metrics struct {
	donationsCreated *prometheus.CounterVec
	ipnReceived      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		donationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wc26",
			Subsystem: "donation",
			Name:      "created_total",
			Help:      "Donation intents created, by operating mode.",
		}, []string{"mode"}),
		ipnReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wc26",
			Subsystem: "donation",
			Name:      "ipn_total",
			Help:      "IPN callbacks received, by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(m.donationsCreated, m.ipnReceived)
	return m
}

func (m *Metrics) RecordDonationCreated(mode string) {
	if m == nil {
		return
	}
	m.donationsCreated.WithLabelValues(mode).Inc()
}

func (m *Metrics) RecordIPN(outcome string) {
	if m == nil {
		return
	}
	m.ipnReceived.WithLabelValues(outcome).Inc()
}
