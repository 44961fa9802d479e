package usecase

import (
	"fmt"
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
)

// ApplyTransferEvent applies an asynchronous transfer notification exactly
// once. The repository dedupes by transfer reference.
func (payoutUc *DefaultPayoutUsecase) ApplyTransferEvent(event *domain.PaymentEvent) error {
	payoutUc.metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind)).Inc()

	switch event.Kind {
	case domain.PaymentEventTransferSucceeded:
		payout, applied, err := payoutUc.payoutRepo.ConfirmTransfer(event.Reference)
		if err != nil {
			return err
		}
		if !applied {
			payoutUc.metrics.WebhookDuplicatesTotal.WithLabelValues(string(event.Kind)).Inc()
			return nil
		}
		payoutUc.metrics.PayoutsExecutedTotal.WithLabelValues(payout.Currency).Inc()
		payoutUc.metrics.PayoutAmountTotal.WithLabelValues(payout.Currency).Add(float64(payout.NetAmount))
		payoutUc.publishPayoutEvent(payout, string(domain.PayoutTransferred))
		return nil

	case domain.PaymentEventTransferFailed:
		payout, err := payoutUc.payoutRepo.GetPayoutByTransferReference(event.Reference)
		if err != nil {
			return err
		}
		if payout.Status == domain.PayoutFailed {
			payoutUc.metrics.WebhookDuplicatesTotal.WithLabelValues(string(event.Kind)).Inc()
			return nil
		}
		if err := payoutUc.payoutRepo.FailPayout(payout.ID, "processor reported transfer failure"); err != nil {
			return err
		}
		payoutUc.metrics.PayoutsFailedTotal.WithLabelValues(payout.Currency).Inc()
		payoutUc.publishPayoutEvent(payout, string(domain.PayoutFailed))
		return nil

	default:
		return fmt.Errorf("unexpected payment event kind %s", event.Kind)
	}
}

func (payoutUc *DefaultPayoutUsecase) publishPayoutEvent(payout *domain.Payout, status string) {
	eventName := publisher.EventPayoutCompleted
	if status == string(domain.PayoutFailed) {
		eventName = publisher.EventPayoutFailed
	}
	go func(event publisher.PayoutEvent) {
		if err := payoutUc.events.PublishPayoutEvent(event); err != nil {
			slog.Error("failed to publish kafka payout event", "stage", status, "error", err.Error())
		}
	}(publisher.PayoutEvent{
		Event:     eventName,
		PayoutID:  payout.ID,
		OrderID:   payout.OrderID,
		NetAmount: payout.NetAmount,
		Currency:  payout.Currency,
		Status:    status,
	})
}
