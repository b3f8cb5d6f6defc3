package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records snapshot and payment field activity.
type CheckoutMetrics struct {
	snapshots   *prometheus.CounterVec
	grandTotal  *prometheus.HistogramVec
	validations *prometheus.CounterVec
	guard       *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	snapshots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_snapshots_total",
		Help: "Checkout snapshots computed.",
	}, []string{"source"})
	grandTotal := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_snapshot_grand_total",
		Help:    "Grand total of computed checkout snapshots.",
		Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"source"})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_field_validations_total",
		Help: "Payment field validations by field and result.",
	}, []string{"field", "result"})
	guard := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_submit_guard_total",
		Help: "Submission guard evaluations by payment method and outcome.",
	}, []string{"method", "outcome"})
	reg.MustRegister(snapshots, grandTotal, validations, guard)
	return &CheckoutMetrics{
		snapshots:   snapshots,
		grandTotal:  grandTotal,
		validations: validations,
		guard:       guard,
	}
}

// ObserveSnapshot counts a computed snapshot and records its grand total.
func (c *CheckoutMetrics) ObserveSnapshot(source string, grandTotal float64) {
	if c == nil || c.snapshots == nil {
		return
	}
	label := normalizeLabel(source)
	c.snapshots.WithLabelValues(label).Inc()
	c.grandTotal.WithLabelValues(label).Observe(grandTotal)
}

// ObserveFieldValidation counts a field validation. An empty result means valid.
func (c *CheckoutMetrics) ObserveFieldValidation(field, result string) {
	if c == nil || c.validations == nil {
		return
	}
	if result == "" {
		result = "valid"
	}
	c.validations.WithLabelValues(normalizeLabel(field), result).Inc()
}

// ObserveSubmitGuard counts a submission guard evaluation.
func (c *CheckoutMetrics) ObserveSubmitGuard(method string, allowed bool) {
	if c == nil || c.guard == nil {
		return
	}
	outcome := "blocked"
	if allowed {
		outcome = "allowed"
	}
	c.guard.WithLabelValues(normalizeLabel(method), outcome).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
