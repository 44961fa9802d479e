package usecase

import (
	"context"
	"fmt"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	escrowdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/escrow"
	"github.com/jaevor/go-nanoid"
)

// CaptureAdditional captures extra funds for approved additional hours onto
// the existing escrow record. The reference is recorded before the capture
// call so the confirmation webhook can route the credit back to this escrow;
// the credit itself lands when the processor confirms.
func (escrowUc *DefaultEscrowUsecase) CaptureAdditional(ctx context.Context, input *escrowdto.CaptureAdditionalInput) (*domain.EscrowRecord, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: top-up amount must be positive", domain.ErrValidation)
	}
	order, err := escrowUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != order.CustomerID {
		return nil, domain.ErrPermissionDenied
	}

	escrow, err := escrowUc.escrowRepo.GetEscrowByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowHeld && escrow.Status != domain.EscrowPartiallyReleased {
		return nil, fmt.Errorf("%w: top-up of escrow in status %s", domain.ErrInvalidStateTransition, escrow.Status)
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	reference := fmt.Sprintf("%s_topup_%s", escrow.ID, idGenerator())
	if err := escrowUc.escrowRepo.RecordTopUpReference(escrow.ID, reference, input.Amount); err != nil {
		return nil, err
	}
	if err := escrowUc.gateway.Capture(ctx, input.Amount, escrow.Currency, reference); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureFailed, err)
	}
	return escrow, nil
}
