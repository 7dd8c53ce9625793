// Package metrics exposes Prometheus counters for the vault client
// transport. It satisfies the vault.Observer interface so the library
// itself stays free of any registry dependency.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal  *prometheus.CounterVec
	failoverTotal  *prometheus.CounterVec
	exhaustedTotal prometheus.Counter

	// Registration guard
	metricsOnce sync.Once
)

// TransportMetrics records transport-level events. Metrics are lazily
// registered on first construction.
type TransportMetrics struct{}

// NewTransportMetrics creates a TransportMetrics, registering the
// underlying collectors exactly once per process.
func NewTransportMetrics() *TransportMetrics {
	metricsOnce.Do(func() {
		requestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultkit_requests_total",
				Help: "Total number of requests that received a response",
			},
			[]string{"method", "status"},
		)

		failoverTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultkit_failover_total",
				Help: "Total number of hosts skipped after a connection-level failure",
			},
			[]string{"host"},
		)

		exhaustedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vaultkit_hosts_exhausted_total",
				Help: "Total number of calls that failed with every host unreachable",
			},
		)
	})
	return &TransportMetrics{}
}

// ObserveRequest counts a completed HTTP exchange by method and status.
func (m *TransportMetrics) ObserveRequest(method string, status int) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ObserveFailover counts a host skipped during the failover walk.
func (m *TransportMetrics) ObserveFailover(host string) {
	failoverTotal.WithLabelValues(host).Inc()
}

// ObserveExhausted counts a call that ran out of hosts.
func (m *TransportMetrics) ObserveExhausted() {
	exhaustedTotal.Inc()
}
