// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "donordesk"

// Metrics groups every collector the service records.
type Metrics struct {
	RPCRequests      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
	GenerateRequests *prometheus.CounterVec
	GenerateDuration *prometheus.HistogramVec
	FraudVerdicts    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		GenerateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genai_requests_total",
			Help:      "Generative-text calls by use case and outcome.",
		}, []string{"use_case", "outcome"}),
		GenerateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "genai_duration_seconds",
			Help:      "Generative-text latency by use case.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"use_case"}),
		FraudVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fraud_verdicts_total",
			Help:      "Fraud assessments by verdict (suspicious, clear, unavailable).",
		}, []string{"verdict"}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.GenerateRequests, m.GenerateDuration, m.FraudVerdicts)
	return m
}

// NewUnregistered creates collectors on a private registry, for tests.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
