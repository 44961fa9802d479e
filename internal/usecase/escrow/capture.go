package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	escrowdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/escrow"
	"github.com/jaevor/go-nanoid"
)

// CaptureFunds creates the escrow record and asks the processor to capture the
// full order amount. The record stays PENDING until the processor confirms via
// webhook; calling again before confirmation retries the capture under the
// same payment reference, and calling again after confirmation returns the
// held record unchanged.
func (escrowUc *DefaultEscrowUsecase) CaptureFunds(ctx context.Context, input *escrowdto.CaptureFundsInput) (*domain.EscrowRecord, error) {
	order, err := escrowUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != order.CustomerID {
		return nil, domain.ErrPermissionDenied
	}
	if input.Currency != "" && input.Currency != order.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	escrow, err := escrowUc.escrowRepo.GetEscrowByOrderID(order.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if escrow != nil {
		switch escrow.Status {
		case domain.EscrowPending:
			// retry of an unconfirmed capture, same reference so the processor
			// dedupes on its side
			if err := escrowUc.gateway.Capture(ctx, escrow.GrossAmount, escrow.Currency, escrow.PaymentReference); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
			}
			return escrow, nil
		case domain.EscrowRefunded:
			return nil, fmt.Errorf("%w: escrow already %s", domain.ErrInvalidStateTransition, escrow.Status)
		default:
			// the capture already confirmed; repeating the call changes nothing
			return escrow, nil
		}
	}

	if order.Status != domain.OrderPendingPayment {
		return nil, fmt.Errorf("%w: capture for order in status %s", domain.ErrInvalidStateTransition, order.Status)
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	platformFee, providerAmount := domain.ComputeFeeSplit(order.GrossAmount, escrowUc.platformFeeBps)
	record := domain.EscrowRecord{
		ID:                idGenerator(),
		OrderID:           order.ID,
		GrossAmount:       order.GrossAmount,
		PlatformFeeAmount: platformFee,
		ProviderAmount:    providerAmount,
		Currency:          order.Currency,
		Status:            domain.EscrowPending,
		PaymentReference:  fmt.Sprintf("%s_capture_%s", order.ID, idGenerator()),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := escrowUc.escrowRepo.CreateEscrow(&record); err != nil {
		return nil, err
	}

	if err := escrowUc.gateway.Capture(ctx, record.GrossAmount, record.Currency, record.PaymentReference); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
	}
	return &record, nil
}
