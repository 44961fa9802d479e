package usecase

import (
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	escrowdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/escrow"
)

// Refund returns the full escrow to the customer and cancels the order.
// The repository rejects the refund once any entry was billed or paid.
func (escrowUc *DefaultEscrowUsecase) Refund(input *escrowdto.RefundInput) error {
	order, err := escrowUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return err
	}
	if input.ActorID != order.CustomerID && input.ActorID != order.ProviderID {
		return domain.ErrPermissionDenied
	}

	escrow, err := escrowUc.escrowRepo.GetEscrowByOrderID(order.ID)
	if err != nil {
		return err
	}
	if err := escrowUc.escrowRepo.Refund(escrow.ID); err != nil {
		return err
	}

	escrowUc.metrics.EscrowRefundedTotal.WithLabelValues(escrow.Currency).Inc()
	slog.Info("escrow refunded",
		"order_id", order.ID,
		"escrow_id", escrow.ID,
		"amount", escrow.GrossAmount,
		"reason", input.Reason)

	go func(event publisher.OrderEvent) {
		if err := escrowUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "escrow refunded", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventEscrowRefunded,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProviderID: order.ProviderID,
		Status:     string(domain.OrderCancelled),
		Amount:     escrow.GrossAmount,
		Currency:   escrow.Currency,
	})
	return nil
}
