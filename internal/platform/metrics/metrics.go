// Package metrics holds the Prometheus collectors for the booking core.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	BookingOps      *prometheus.CounterVec
	CreditOps       *prometheus.CounterVec
	AuditFailures   *prometheus.CounterVec
	Reconciliations *prometheus.CounterVec
	OpDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "booking_operations_total",
			Help:      "Booking engine operations by operation and result kind.",
		}, []string{"operation", "result"}),
		CreditOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "credit_operations_total",
			Help:      "Credit ledger mutations by kind and result.",
		}, []string{"kind", "result"}),
		AuditFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "audit_write_failures_total",
			Help:      "Booking history writes that failed and were skipped.",
		}, []string{"operation"}),
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "needs_reconciliation_total",
			Help:      "Partial effects left behind after a failed compensation or refund.",
		}, []string{"operation"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "studio",
			Name:      "booking_operation_duration_seconds",
			Help:      "Latency of booking engine operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(m.BookingOps, m.CreditOps, m.AuditFailures, m.Reconciliations, m.OpDuration)
	}

	return m
}

func (m *Metrics) ObserveBooking(operation, result string, seconds float64) {
	if m == nil {
		return
	}
	m.BookingOps.WithLabelValues(operation, result).Inc()
	m.OpDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) ObserveCredit(kind, result string) {
	if m == nil {
		return
	}
	m.CreditOps.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) AuditFailed(operation string) {
	if m == nil {
		return
	}
	m.AuditFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) NeedsReconciliation(operation string) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(operation).Inc()
}
