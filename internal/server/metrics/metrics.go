// Package metrics exposes Prometheus instrumentation for the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Results of an edge mutation.
const (
	ResultApplied = "applied"
	ResultNoop    = "noop"
	ResultError   = "error"
)

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	registry      *prometheus.Registry
	edgeMutations *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		edgeMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catsocial",
			Name:      "edge_mutations_total",
			Help:      "Edge mutations by edge type, operation and result.",
		}, []string{"edge", "op", "result"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catsocial",
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latency by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		m.edgeMutations,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// EdgeMutation records the outcome of one edge mutation. applied is whether
// the edge row actually changed.
func (m *Metrics) EdgeMutation(edge, op string, applied bool, err error) {
	result := ResultNoop
	switch {
	case err != nil:
		result = ResultError
	case applied:
		result = ResultApplied
	}
	m.edgeMutations.WithLabelValues(edge, op, result).Inc()
}

// ObserveRPC records the latency of one gRPC call.
func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	m.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
