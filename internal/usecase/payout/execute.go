package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	payoutdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/payout"
	"github.com/jaevor/go-nanoid"
)

// ExecutePayout releases the billed entries' worth of escrow to the provider.
// The idempotency key is derived from the order and the exact entry set, so
// a repeated call for the same work lands on the existing payout instead of
// transferring twice.
func (payoutUc *DefaultPayoutUsecase) ExecutePayout(ctx context.Context, input *payoutdto.ExecutePayoutInput) (*domain.Payout, error) {
	start := time.Now()

	order, err := payoutUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != order.ProviderID && input.ActorID != order.CustomerID {
		return nil, domain.ErrPermissionDenied
	}
	if order.Status != domain.OrderCustomerCompleted {
		return nil, fmt.Errorf("%w: payout for order in status %s", domain.ErrInvalidStateTransition, order.Status)
	}

	entries, err := payoutUc.timeEntryRepo.GetBilledEntriesByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoBillableEntries
	}
	entryIDs := make([]string, len(entries))
	var netAmount int64
	for i, entry := range entries {
		entryIDs[i] = entry.ID
		netAmount += entry.BillableAmount
	}

	escrow, err := payoutUc.escrowRepo.GetEscrowByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if netAmount > escrow.HeldBalance() {
		payoutUc.metrics.InvariantViolationsTotal.WithLabelValues("payout_exceeds_held_balance").Inc()
		return nil, domain.ErrInsufficientEscrowBalance
	}

	key := domain.PayoutIdempotencyKey(order.ID, entryIDs)
	payout, err := payoutUc.payoutRepo.GetPayoutByIdempotencyKey(key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if payout != nil {
		switch payout.Status {
		case domain.PayoutTransferred:
			return payout, nil
		case domain.PayoutFailed:
			payout, err = payoutUc.payoutRepo.ResumePayout(payout.ID)
			if err != nil {
				return nil, err
			}
		}
		// PENDING falls through: the transfer is re-sent under the same key
		// and the processor drops the duplicate
	} else {
		idGenerator, err := nanoid.Standard(15)
		if err != nil {
			return nil, err
		}
		payout = &domain.Payout{
			ID:             idGenerator(),
			OrderID:        order.ID,
			EscrowRecordID: escrow.ID,
			TimeEntryIDs:   entryIDs,
			NetAmount:      netAmount,
			Currency:       escrow.Currency,
			Status:         domain.PayoutPending,
			IdempotencyKey: key,
			Attempts:       1,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		if err := payoutUc.payoutRepo.BeginPayout(payout); err != nil {
			return nil, err
		}
	}

	if err := payoutUc.transfer(ctx, payout, order.ProviderID); err != nil {
		payoutUc.metrics.PayoutDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		return nil, err
	}
	payoutUc.metrics.PayoutDuration.WithLabelValues("accepted").Observe(time.Since(start).Seconds())
	return payout, nil
}

// transfer sends the held amount to the provider's payout destination. On
// failure the attempt is rolled back locally: entries return to BILLED, the
// escrow release is undone, and the payout waits as FAILED under its key.
func (payoutUc *DefaultPayoutUsecase) transfer(ctx context.Context, payout *domain.Payout, providerID string) error {
	payee, err := payoutUc.payeeResolver.ResolvePayee(providerID)
	if err != nil {
		return err
	}

	transferReference, err := payoutUc.gateway.Transfer(ctx, payout.NetAmount, payout.Currency, payee.PayoutDestination(), payout.IdempotencyKey)
	if err != nil {
		if failErr := payoutUc.payoutRepo.FailPayout(payout.ID, err.Error()); failErr != nil {
			slog.Error("failed to roll back payout attempt", "payout_id", payout.ID, "error", failErr.Error())
		}
		payoutUc.metrics.PayoutsFailedTotal.WithLabelValues(payout.Currency).Inc()
		payoutUc.publishPayoutEvent(payout, string(domain.PayoutFailed))
		return fmt.Errorf("%w: %v", domain.ErrPayoutFailed, err)
	}

	if err := payoutUc.payoutRepo.MarkTransferAccepted(payout.ID, transferReference); err != nil {
		return err
	}
	payout.TransferReference = transferReference
	slog.Info("payout transfer accepted",
		"payout_id", payout.ID,
		"order_id", payout.OrderID,
		"net_amount", payout.NetAmount,
		"transfer_reference", transferReference)
	return nil
}
