package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportMetrics_Counters(t *testing.T) {
	m := NewTransportMetrics()
	require.NotNil(t, m)

	m.ObserveRequest("GET", 200)
	m.ObserveRequest("GET", 200)
	m.ObserveRequest("LIST", 404)
	m.ObserveFailover("http://127.0.0.1:1")
	m.ObserveExhausted()

	assert.Equal(t, float64(2), testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(requestsTotal.WithLabelValues("LIST", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(failoverTotal.WithLabelValues("http://127.0.0.1:1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(exhaustedTotal))
}

func TestNewTransportMetrics_Idempotent(t *testing.T) {
	// Constructing twice must not panic on duplicate registration.
	first := NewTransportMetrics()
	second := NewTransportMetrics()
	assert.NotNil(t, first)
	assert.NotNil(t, second)
}
