package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（重复注册）

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, OrdersPlacedTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestObserveHTTPRequest(t *testing.T) {
	before := counterValue(t, requestsCounter("GET", "/books/:id", "200"))

	ObserveHTTPRequest("GET", "/books/:id", 200, 15*time.Millisecond)
	ObserveHTTPRequest("GET", "/books/:id", 200, 20*time.Millisecond)
	ObserveHTTPRequest("GET", "/books/:id", 404, time.Millisecond)

	assert.Equal(t, before+2, counterValue(t, requestsCounter("GET", "/books/:id", "200")))

	var m dto.Metric
	hist := HTTPRequestDuration.WithLabelValues("GET", "/books/:id").(prometheus.Metric)
	require.NoError(t, hist.Write(&m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(3))
}

func TestOrderMetrics(t *testing.T) {
	InitMetrics()
	placed := counterValue(t, OrdersPlacedTotal)
	empty := counterValue(t, OrdersFailedTotal.WithLabelValues("cart_empty"))

	ObserveOrderPlaced(30 * time.Millisecond)
	IncOrderFailed("cart_empty")
	IncOrderFailed("cart_empty")

	assert.Equal(t, placed+1, counterValue(t, OrdersPlacedTotal))
	assert.Equal(t, empty+2, counterValue(t, OrdersFailedTotal.WithLabelValues("cart_empty")))
}

func TestCircuitBreakerMetrics(t *testing.T) {
	SetCircuitBreakerState("order-events", 1)

	var m dto.Metric
	require.NoError(t, CircuitBreakerState.WithLabelValues("order-events").Write(&m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())

	SetCircuitBreakerState("order-events", 0)
	require.NoError(t, CircuitBreakerState.WithLabelValues("order-events").Write(&m))
	assert.Equal(t, float64(0), m.GetGauge().GetValue())
}

// requestsCounter 带标签的请求计数器
func requestsCounter(method, path, status string) prometheus.Counter {
	InitMetrics()
	return HTTPRequestsTotal.WithLabelValues(method, path, status)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
