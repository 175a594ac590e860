package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for dagcheck_classifications_total.
const (
	outcomeDAG       = "dag"
	outcomeCyclic    = "cyclic"
	outcomeMalformed = "malformed"
	outcomeInvalid   = "invalid"
)

// metrics is registered on a per-app registry so several apps can coexist
// in one process.
type metrics struct {
	registry *prometheus.Registry

	// classifications counts requests by outcome
	// Labels: "dag", "cyclic", "malformed", "invalid"
	classifications *prometheus.CounterVec

	classifyDuration prometheus.Histogram
	graphNodes       prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dagcheck_classifications_total",
			Help: "Total classification requests by outcome",
		}, []string{"result"}),
		classifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dagcheck_classify_duration_seconds",
			Help:    "Time spent classifying a graph",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		graphNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dagcheck_graph_nodes",
			Help:    "Number of nodes per classified graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

func (m *metrics) outcome(result string) {
	m.classifications.WithLabelValues(result).Inc()
}
