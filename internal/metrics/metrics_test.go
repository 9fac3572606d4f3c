package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	// IncHTTP should not panic
	assert.NotPanics(t, func() {
		IncHTTP("test_endpoint")
	})
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("signup", "error"))
	ObserveOperation("signup", errors.New("boom"))
	ObserveOperation("signup", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(operations.WithLabelValues("signup", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(operations.WithLabelValues("signup", "ok")), float64(1))
}

func TestIncEvent(t *testing.T) {
	before := testutil.ToFloat64(events.WithLabelValues("booking_created"))
	IncEvent("booking_created")
	assert.Equal(t, before+1, testutil.ToFloat64(events.WithLabelValues("booking_created")))
}
