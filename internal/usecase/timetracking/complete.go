package usecase

import (
	"fmt"
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
)

// CompleteProvider marks the work as done from the provider side. Entries
// still awaiting a customer decision block completion.
func (ttUc *DefaultTimeTrackingUsecase) CompleteProvider(input *timetrackingdto.CompleteOrderInput) error {
	order, err := ttUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return err
	}
	if input.ActorID != order.ProviderID {
		return domain.ErrPermissionDenied
	}

	pending, err := ttUc.timeEntryRepo.CountEntriesByStatuses(order.ID, []domain.TimeEntryStatus{
		domain.EntryLogged, domain.EntrySubmitted,
	})
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: %d entries still await submission or approval", domain.ErrInvalidStateTransition, pending)
	}

	return ttUc.orderRepo.UpdateOrderStatus(order.ID, domain.OrderInProgress, domain.OrderProviderCompleted)
}

// CompleteCustomer is the customer's confirmation and the payout
// authorization. Both completions together let the payout engine release the
// held funds.
func (ttUc *DefaultTimeTrackingUsecase) CompleteCustomer(input *timetrackingdto.CompleteOrderInput) error {
	order, err := ttUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return err
	}
	if input.ActorID != order.CustomerID {
		return domain.ErrPermissionDenied
	}
	if err := ttUc.orderRepo.UpdateOrderStatus(order.ID, domain.OrderProviderCompleted, domain.OrderCustomerCompleted); err != nil {
		return err
	}

	go func(event publisher.OrderEvent) {
		if err := ttUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "order completed", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventOrderCompleted,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProviderID: order.ProviderID,
		Status:     string(domain.OrderCustomerCompleted),
	})
	return nil
}
