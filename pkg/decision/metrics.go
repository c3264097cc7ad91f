package decision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"moltworks/replygate/pkg/state"
)

// Metrics contains Prometheus metrics for the decision pipeline.
type Metrics struct {
	decisions *prometheus.CounterVec
	denials   *prometheus.CounterVec
	burstUsed *prometheus.CounterVec

	spentUSD    prometheus.Gauge
	budgetUsage prometheus.Gauge
	callsToday  prometheus.Gauge
	dedupSize   prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		decisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replygate_decisions_total",
				Help: "Total number of admission decisions by result and priority",
			},
			[]string{"result", "priority"},
		),

		denials: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replygate_denials_total",
				Help: "Total number of denied admissions by reason",
			},
			[]string{"reason", "priority"},
		),

		burstUsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replygate_burst_used_total",
				Help: "Total number of burst slots consumed by pool",
			},
			[]string{"pool"},
		),

		spentUSD: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "replygate_spent_usd_today",
				Help: "Money spent today in USD",
			},
		),

		budgetUsage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "replygate_budget_usage_ratio",
				Help: "Spend as a fraction of the daily budget (0.0-1.0+)",
			},
		),

		callsToday: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "replygate_calls_today",
				Help: "Successful external calls today",
			},
		),

		dedupSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "replygate_replied_events",
				Help: "Size of the replied-event dedup set",
			},
		),
	}
}

// RecordDecision records one pipeline verdict.
func (m *Metrics) RecordDecision(d Decision) {
	result := "allowed"
	if !d.Reply {
		result = "denied"
		m.denials.WithLabelValues(d.Reason, string(d.Priority)).Inc()
	}
	m.decisions.WithLabelValues(result, string(d.Priority)).Inc()

	if d.Scheduler != nil && d.Scheduler.UsedBurst {
		m.burstUsed.WithLabelValues(d.Scheduler.BurstType).Inc()
	}
}

// UpdateState refreshes the gauges from the current durable state.
func (m *Metrics) UpdateState(st *state.State, dailyBudgetUSD float64) {
	m.spentUSD.Set(st.SpentUSD)
	if dailyBudgetUSD > 0 {
		m.budgetUsage.Set(st.SpentUSD / dailyBudgetUSD)
	}
	m.callsToday.Set(float64(st.CallsToday))
	m.dedupSize.Set(float64(len(st.RepliedEventIDs)))
}
