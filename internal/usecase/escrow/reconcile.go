package usecase

import (
	"context"
	"log/slog"
)

// ReconcileStuckCaptures retries captures whose confirmation never arrived.
// Re-capturing under the original reference is safe: the processor dedupes on
// its side and the webhook apply dedupes on ours.
func (escrowUc *DefaultEscrowUsecase) ReconcileStuckCaptures(ctx context.Context) error {
	records, err := escrowUc.escrowRepo.FindStuckPending(escrowUc.stuckPendingSeconds)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := escrowUc.gateway.Capture(ctx, record.GrossAmount, record.Currency, record.PaymentReference); err != nil {
			slog.Error("failed to retry stuck capture",
				"escrow_id", record.ID,
				"order_id", record.OrderID,
				"reference", record.PaymentReference,
				"error", err.Error())
			continue
		}
		slog.Info("retried stuck capture",
			"escrow_id", record.ID,
			"order_id", record.OrderID,
			"reference", record.PaymentReference)
	}
	return nil
}
