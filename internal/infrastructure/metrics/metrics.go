package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics holds all prometheus metrics of the transaction engine.
type EngineMetrics struct {
	// quotes and proposals
	ProposalsSubmittedTotal prometheus.CounterVec
	ProposalsAcceptedTotal  prometheus.CounterVec

	// escrow
	EscrowCapturedTotal       prometheus.CounterVec
	EscrowCapturedAmountTotal prometheus.CounterVec
	EscrowRefundedTotal       prometheus.CounterVec
	WebhookEventsTotal        prometheus.CounterVec
	WebhookDuplicatesTotal    prometheus.CounterVec

	// time tracking
	TimeEntriesLoggedTotal prometheus.CounterVec
	ApprovalsResolvedTotal prometheus.CounterVec

	// payouts
	PayoutsExecutedTotal prometheus.CounterVec
	PayoutsFailedTotal   prometheus.CounterVec
	PayoutAmountTotal    prometheus.CounterVec
	PayoutDuration       prometheus.HistogramVec

	// invariant violations, must stay zero in a healthy system
	InvariantViolationsTotal prometheus.CounterVec
}

func NewEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		ProposalsSubmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proposals_submitted_total",
				Help: "Total number of proposals submitted to quotes",
			},
			[]string{"category"},
		),

		ProposalsAcceptedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proposals_accepted_total",
				Help: "Total number of accepted proposals (orders created)",
			},
			[]string{"category", "currency"},
		),

		EscrowCapturedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_captured_total",
				Help: "Total number of confirmed escrow captures",
			},
			[]string{"currency"},
		),

		EscrowCapturedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_captured_amount_total",
				Help: "Total captured gross amount in minor units",
			},
			[]string{"currency"},
		),

		EscrowRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_refunded_total",
				Help: "Total number of refunded escrow records",
			},
			[]string{"currency"},
		),

		WebhookEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_events_total",
				Help: "Total number of processor webhook events received",
			},
			[]string{"kind"},
		),

		WebhookDuplicatesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_duplicates_total",
				Help: "Webhook events dropped as duplicate deliveries",
			},
			[]string{"kind"},
		),

		TimeEntriesLoggedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "time_entries_logged_total",
				Help: "Total number of logged time entries",
			},
			[]string{"category"},
		),

		ApprovalsResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approvals_resolved_total",
				Help: "Approval requests resolved, by customer decision",
			},
			[]string{"decision"},
		),

		PayoutsExecutedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payouts_executed_total",
				Help: "Total number of successfully transferred payouts",
			},
			[]string{"currency"},
		),

		PayoutsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payouts_failed_total",
				Help: "Total number of failed payout attempts",
			},
			[]string{"currency"},
		),

		PayoutAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_amount_total",
				Help: "Total transferred net amount in minor units",
			},
			[]string{"currency"},
		),

		PayoutDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payout_duration_seconds",
				Help:    "Wall time of payout execution including the transfer call",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"outcome"},
		),

		InvariantViolationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invariant_violations_total",
				Help: "Financial invariant violations detected; must stay zero",
			},
			[]string{"kind"},
		),
	}
}
