// Package metrics exposes the Prometheus instruments for the audit trail.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the trail counters. A nil *Metrics is valid everywhere and
// records nothing, so callers never guard their instrumentation.
type Metrics struct {
	EntriesLogged     *prometheus.CounterVec
	EntriesPurged     prometheus.Counter
	EntriesAnonymized prometheus.Counter
	VerificationRuns  *prometheus.CounterVec
	NotifyFailures    prometheus.Counter
	QueryDuration     prometheus.Histogram
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the instruments on the given registerer. Tests pass a
// fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntriesLogged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audit",
			Name:      "entries_logged_total",
			Help:      "Audit entries appended to the trail, by severity.",
		}, []string{"severity"}),
		EntriesPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "audit",
			Name:      "entries_purged_total",
			Help:      "Audit entries removed by the retention purge.",
		}),
		EntriesAnonymized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "audit",
			Name:      "entries_anonymized_total",
			Help:      "Audit entries rewritten by user anonymization.",
		}),
		VerificationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audit",
			Name:      "verification_runs_total",
			Help:      "Integrity verification passes, by outcome.",
		}, []string{"outcome"}),
		NotifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "audit",
			Name:      "notify_failures_total",
			Help:      "Notifications the event bus failed to accept.",
		}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "audit",
			Name:      "query_duration_seconds",
			Help:      "Latency of trail queries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// LogEntry records an appended entry. Safe on a nil receiver.
func (m *Metrics) LogEntry(severity string) {
	if m == nil {
		return
	}
	m.EntriesLogged.WithLabelValues(severity).Inc()
}

// Purged records n purged entries. Safe on a nil receiver.
func (m *Metrics) Purged(n float64) {
	if m == nil {
		return
	}
	m.EntriesPurged.Add(n)
}

// Anonymized records n rewritten entries. Safe on a nil receiver.
func (m *Metrics) Anonymized(n float64) {
	if m == nil {
		return
	}
	m.EntriesAnonymized.Add(n)
}

// Verification records a verification pass outcome ("valid" or "invalid").
// Safe on a nil receiver.
func (m *Metrics) Verification(outcome string) {
	if m == nil {
		return
	}
	m.VerificationRuns.WithLabelValues(outcome).Inc()
}

// NotifyFailure records a dropped notification. Safe on a nil receiver.
func (m *Metrics) NotifyFailure() {
	if m == nil {
		return
	}
	m.NotifyFailures.Inc()
}

// ObserveQuery records a query latency in seconds. Safe on a nil receiver.
func (m *Metrics) ObserveQuery(seconds float64) {
	if m == nil {
		return
	}
	m.QueryDuration.Observe(seconds)
}
