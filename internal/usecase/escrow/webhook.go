package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
)

// ApplyCaptureEvent applies an asynchronous capture notification. Deliveries
// are at-least-once, so the repository dedupes by reference and a redelivery
// ends here as a counted no-op.
func (escrowUc *DefaultEscrowUsecase) ApplyCaptureEvent(event *domain.PaymentEvent) error {
	escrowUc.metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind)).Inc()

	switch event.Kind {
	case domain.PaymentEventCaptureSucceeded:
		// top-up references are recorded when issued; everything else is an
		// initial capture
		escrowID, err := escrowUc.escrowRepo.GetTopUpEscrowID(event.Reference)
		if err == nil {
			return escrowUc.applyTopUp(escrowID, event)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return escrowUc.applyInitialCapture(event)

	case domain.PaymentEventCaptureFailed:
		// the escrow stays PENDING and the customer retries the capture;
		// nothing to roll back because nothing was held yet
		slog.Warn("payment capture failed",
			"reference", event.Reference,
			"amount", event.Amount,
			"currency", event.Currency)
		return nil

	default:
		return fmt.Errorf("unexpected payment event kind %s", event.Kind)
	}
}

func (escrowUc *DefaultEscrowUsecase) applyInitialCapture(event *domain.PaymentEvent) error {
	escrow, applied, err := escrowUc.escrowRepo.ConfirmCapture(event.Reference)
	if err != nil {
		return err
	}
	if !applied {
		escrowUc.metrics.WebhookDuplicatesTotal.WithLabelValues(string(event.Kind)).Inc()
		return nil
	}
	if event.Amount != 0 && event.Amount != escrow.GrossAmount {
		escrowUc.metrics.InvariantViolationsTotal.WithLabelValues("capture_amount_mismatch").Inc()
		slog.Error("captured amount differs from escrow gross",
			"reference", event.Reference,
			"captured", event.Amount,
			"expected", escrow.GrossAmount)
	}

	escrowUc.metrics.EscrowCapturedTotal.WithLabelValues(escrow.Currency).Inc()
	escrowUc.metrics.EscrowCapturedAmountTotal.WithLabelValues(escrow.Currency).Add(float64(escrow.GrossAmount))

	order, err := escrowUc.orderRepo.GetOrderByID(escrow.OrderID)
	if err != nil {
		return err
	}
	go func(event publisher.OrderEvent) {
		if err := escrowUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "escrow held", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventEscrowHeld,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProviderID: order.ProviderID,
		Status:     string(domain.OrderEscrowHeld),
		Amount:     escrow.GrossAmount,
		Currency:   escrow.Currency,
	})
	return nil
}

func (escrowUc *DefaultEscrowUsecase) applyTopUp(escrowID string, event *domain.PaymentEvent) error {
	platformFee, providerAmount := domain.ComputeFeeSplit(event.Amount, escrowUc.platformFeeBps)
	applied, err := escrowUc.escrowRepo.ConfirmTopUp(escrowID, event.Reference, event.Amount, platformFee, providerAmount)
	if err != nil {
		return err
	}
	if !applied {
		escrowUc.metrics.WebhookDuplicatesTotal.WithLabelValues(string(event.Kind)).Inc()
		return nil
	}
	escrowUc.metrics.EscrowCapturedTotal.WithLabelValues(event.Currency).Inc()
	escrowUc.metrics.EscrowCapturedAmountTotal.WithLabelValues(event.Currency).Add(float64(event.Amount))
	return nil
}
