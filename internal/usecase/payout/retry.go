package usecase

import (
	"context"
	"log/slog"
)

// RetryFailedPayouts re-arms payouts that failed below the attempt cap and
// sends the transfer again under the original idempotency key.
func (payoutUc *DefaultPayoutUsecase) RetryFailedPayouts(ctx context.Context) error {
	payouts, err := payoutUc.payoutRepo.FindFailedPayouts(payoutUc.maxAttempts)
	if err != nil {
		return err
	}
	for _, failed := range payouts {
		order, err := payoutUc.orderRepo.GetOrderByID(failed.OrderID)
		if err != nil {
			slog.Error("failed to load order for payout retry", "payout_id", failed.ID, "error", err.Error())
			continue
		}

		payout, err := payoutUc.payoutRepo.ResumePayout(failed.ID)
		if err != nil {
			slog.Error("failed to resume payout", "payout_id", failed.ID, "error", err.Error())
			continue
		}
		if err := payoutUc.transfer(ctx, payout, order.ProviderID); err != nil {
			slog.Error("payout retry failed",
				"payout_id", payout.ID,
				"order_id", payout.OrderID,
				"attempts", payout.Attempts,
				"error", err.Error())
			continue
		}
		slog.Info("payout retry accepted", "payout_id", payout.ID, "attempts", payout.Attempts)
	}
	return nil
}

// ResumeStalledPayouts replays transfers for payouts a crash left PENDING
// before the transfer call was accepted. Entries are already PLATFORM_HELD and
// the escrow amount released at that point, so only the transfer is re-sent,
// under the stored idempotency key; a transfer failure takes the normal
// FailPayout rollback path.
func (payoutUc *DefaultPayoutUsecase) ResumeStalledPayouts(ctx context.Context) error {
	payouts, err := payoutUc.payoutRepo.FindStalledPayouts(payoutUc.stalledAfter)
	if err != nil {
		return err
	}
	for _, stalled := range payouts {
		order, err := payoutUc.orderRepo.GetOrderByID(stalled.OrderID)
		if err != nil {
			slog.Error("failed to load order for stalled payout", "payout_id", stalled.ID, "error", err.Error())
			continue
		}
		if err := payoutUc.transfer(ctx, stalled, order.ProviderID); err != nil {
			slog.Error("stalled payout resume failed",
				"payout_id", stalled.ID,
				"order_id", stalled.OrderID,
				"error", err.Error())
			continue
		}
		slog.Info("stalled payout transfer re-sent", "payout_id", stalled.ID, "order_id", stalled.OrderID)
	}
	return nil
}
