// Package metrics exposes Prometheus instrumentation for the loyalty
// domain: code issuance, code validation outcomes, and reward redemptions.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeAlreadyUsed = "already_used"
	OutcomeExpired     = "expired"
	OutcomeNotFound    = "not_found"
	OutcomeForbidden   = "forbidden"
	OutcomeError       = "error"
)

// LoyaltyMetrics tracks business-level counters for the points system.
type LoyaltyMetrics struct {
	codesGenerated prometheus.Counter
	codesValidated prometheus.CounterVec
	pointsAwarded  prometheus.Counter
	redemptions    prometheus.Counter
	pointsRedeemed prometheus.Counter
}

var (
	defaultLoyaltyMetrics     *LoyaltyMetrics
	defaultLoyaltyMetricsOnce sync.Once
)

// NewLoyaltyMetrics builds a LoyaltyMetrics recorder using the default registry.
func NewLoyaltyMetrics() *LoyaltyMetrics {
	defaultLoyaltyMetricsOnce.Do(func() {
		defaultLoyaltyMetrics = newLoyaltyMetrics(prometheus.DefaultRegisterer)
	})
	return defaultLoyaltyMetrics
}

// NewLoyaltyMetricsWithRegisterer allows tests to provide a dedicated registry.
func NewLoyaltyMetricsWithRegisterer(reg prometheus.Registerer) *LoyaltyMetrics {
	return newLoyaltyMetrics(reg)
}

func newLoyaltyMetrics(reg prometheus.Registerer) *LoyaltyMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &LoyaltyMetrics{
		codesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "codes",
			Name:      "generated_total",
			Help:      "Number of single-use codes issued",
		}),
		codesValidated: *factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "codes",
			Name:      "validated_total",
			Help:      "Number of code validation attempts by outcome",
		}, []string{"outcome"}),
		pointsAwarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "points",
			Name:      "awarded_total",
			Help:      "Total points credited through successful validations",
		}),
		redemptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "rewards",
			Name:      "redemptions_total",
			Help:      "Number of successful reward redemptions",
		}),
		pointsRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "points",
			Name:      "redeemed_total",
			Help:      "Total points debited through reward redemptions",
		}),
	}
}

// RecordCodeGenerated increments the issued-code counter.
func (m *LoyaltyMetrics) RecordCodeGenerated() {
	if m == nil || m.codesGenerated == nil {
		return
	}
	m.codesGenerated.Inc()
}

// RecordCodeValidated increments the validation counter for an outcome.
func (m *LoyaltyMetrics) RecordCodeValidated(outcome string) {
	if m == nil {
		return
	}
	m.codesValidated.WithLabelValues(outcome).Inc()
}

// RecordPointsAwarded adds the credited points to the running total.
func (m *LoyaltyMetrics) RecordPointsAwarded(points int64) {
	if m == nil || m.pointsAwarded == nil || points <= 0 {
		return
	}
	m.pointsAwarded.Add(float64(points))
}

// RecordRedemption increments the redemption counter and adds the debited
// points to the running total.
func (m *LoyaltyMetrics) RecordRedemption(points int64) {
	if m == nil || m.redemptions == nil {
		return
	}
	m.redemptions.Inc()
	if points > 0 {
		m.pointsRedeemed.Add(float64(points))
	}
}
