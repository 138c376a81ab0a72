package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveSlotsGenerated(16, false)
	m.ObserveSlotsGenerated(0, true)
	m.ObserveBookingCreated()
	m.ObserveBookingConflict()
	m.ObserveBookingConflict()
	m.ObserveBookingCancelled()

	assert.Equal(t, 16.0, testutil.ToFloat64(m.SlotsGeneratedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotGenerationFailuresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreatedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingConflictsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCancelledTotal))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSlotsGenerated(3, false)
		m.ObserveBookingCreated()
		m.ObserveBookingConflict()
		m.ObserveBookingCancelled()
	})
}
