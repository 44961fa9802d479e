package background

import (
	"context"
	"log/slog"
	"time"

	escrowuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/escrow"
	payoutuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/payout"
)

// BackgroundTasks runs the periodic jobs that keep money state converging:
// failed payout retries, resumption of payouts stalled mid-attempt, and
// re-capture of escrows whose confirmation never arrived.
type BackgroundTasks struct {
	EscrowUsecase     escrowuc.EscrowUsecase
	PayoutUsecase     payoutuc.PayoutUsecase
	PayoutRetryPeriod time.Duration
	ReconcilePeriod   time.Duration
}

func NewBackgroundTasks(escrowUC escrowuc.EscrowUsecase, payoutUC payoutuc.PayoutUsecase, payoutRetrySeconds int) *BackgroundTasks {
	return &BackgroundTasks{
		EscrowUsecase:     escrowUC,
		PayoutUsecase:     payoutUC,
		PayoutRetryPeriod: time.Duration(payoutRetrySeconds) * time.Second,
		ReconcilePeriod:   time.Minute,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startPayoutRetry(ctx)
	go bt.startStuckCaptureReconcile(ctx)
}

func (bt *BackgroundTasks) startPayoutRetry(ctx context.Context) {
	ticker := time.NewTicker(bt.PayoutRetryPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PayoutUsecase.RetryFailedPayouts(ctx); err != nil {
				slog.Error("payout retry sweep failed", "error", err.Error())
			}
			if err := bt.PayoutUsecase.ResumeStalledPayouts(ctx); err != nil {
				slog.Error("stalled payout sweep failed", "error", err.Error())
			}
		}
	}
}

func (bt *BackgroundTasks) startStuckCaptureReconcile(ctx context.Context) {
	ticker := time.NewTicker(bt.ReconcilePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.EscrowUsecase.ReconcileStuckCaptures(ctx); err != nil {
				slog.Error("stuck capture reconcile failed", "error", err.Error())
			}
		}
	}
}
