package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rentalhub"

// BookingMetrics counts booking outcomes.
type BookingMetrics struct {
	created  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	removed  *prometheus.CounterVec
}

// NewBookingMetrics registers the booking counters. A nil registerer yields
// a no-op recorder.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Rental transactions created, by region code.",
	}, []string{"region"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rejected_total",
		Help:      "Booking attempts refused, by error code.",
	}, []string{"reason"})
	removed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_removed_total",
		Help:      "Booking deletions, by outcome (deleted or cancelled).",
	}, []string{"outcome"})
	reg.MustRegister(created, rejected, removed)
	return &BookingMetrics{created: created, rejected: rejected, removed: removed}
}

func (m *BookingMetrics) IncCreated(region string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(region)).Inc()
}

func (m *BookingMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *BookingMetrics) IncRemoved(outcome string) {
	if m == nil || m.removed == nil {
		return
	}
	m.removed.WithLabelValues(normalizeLabel(outcome)).Inc()
}
