package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsExist(t *testing.T) {
	assert.NotNil(t, RequestDuration)
	assert.NotNil(t, BackendRequests)
	assert.NotNil(t, BackendDuration)
	assert.NotNil(t, SessionExpired)
	assert.NotNil(t, GuardRedirects)
	assert.NotNil(t, ReconcileOperations)
	assert.NotNil(t, AuditEvents)
	assert.NotNil(t, ActiveConnections)
}

func TestBackendRequests(t *testing.T) {
	counter := BackendRequests.WithLabelValues("producers", "GET", "200")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestSessionExpired(t *testing.T) {
	before := testutil.ToFloat64(SessionExpired)
	SessionExpired.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SessionExpired))
}

func TestActiveConnections(t *testing.T) {
	ActiveConnections.Set(0)
	ActiveConnections.Inc()
	ActiveConnections.Inc()
	ActiveConnections.Dec()
	assert.Equal(t, float64(1), testutil.ToFloat64(ActiveConnections))
}
