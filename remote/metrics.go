package remote

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	commands    *prometheus.CounterVec
	bursts      prometheus.Counter
	burstTime   prometheus.Histogram
	rollingCode *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "somfy",
			Name:      "commands_total",
			Help:      "Commands handled, by outcome.",
		}, []string{"outcome"}),
		bursts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "somfy",
			Name:      "bursts_total",
			Help:      "Complete bursts put on air.",
		}),
		burstTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "somfy",
			Name:      "burst_duration_seconds",
			Help:      "Wall time to send one burst.",
			Buckets:   prometheus.LinearBuckets(0.5, 0.005, 10),
		}),
		rollingCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "somfy",
			Name:      "rolling_code",
			Help:      "Next rolling code of each remote.",
		}, []string{"device"}),
	}
	if reg != nil {
		reg.MustRegister(m.commands, m.bursts, m.burstTime, m.rollingCode)
	}
	return m
}
