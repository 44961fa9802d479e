package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
	"github.com/jaevor/go-nanoid"
)

// SubmitForApproval bundles logged entries into one approval request for the
// customer. The repository flips every entry LOGGED -> SUBMITTED atomically;
// one foreign or already-submitted entry fails the whole batch.
func (ttUc *DefaultTimeTrackingUsecase) SubmitForApproval(input *timetrackingdto.SubmitForApprovalInput) (*domain.ApprovalRequest, error) {
	if len(input.TimeEntryIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one time entry is required", domain.ErrValidation)
	}
	order, err := ttUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != order.ProviderID {
		return nil, domain.ErrPermissionDenied
	}

	var totalHours float64
	for _, entryID := range input.TimeEntryIDs {
		entry, err := ttUc.timeEntryRepo.GetTimeEntryByID(entryID)
		if err != nil {
			return nil, err
		}
		if entry.OrderID != order.ID {
			return nil, fmt.Errorf("%w: time entry %s does not belong to order %s", domain.ErrValidation, entryID, order.ID)
		}
		totalHours += entry.Hours
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	request := domain.ApprovalRequest{
		ID:              idGenerator(),
		OrderID:         order.ID,
		ProviderID:      order.ProviderID,
		CustomerID:      order.CustomerID,
		TimeEntryIDs:    input.TimeEntryIDs,
		TotalHours:      totalHours,
		TotalAmount:     int64(math.Round(totalHours * float64(order.HourlyRate))),
		Status:          domain.ApprovalPending,
		ProviderMessage: input.ProviderMessage,
		SubmittedAt:     time.Now(),
	}
	if err := ttUc.approvalRepo.SubmitForApproval(&request); err != nil {
		return nil, err
	}

	go func(event publisher.ApprovalEvent) {
		if err := ttUc.events.PublishApprovalEvent(event); err != nil {
			slog.Error("failed to publish kafka approval event", "stage", "approval requested", "error", err.Error())
		}
	}(publisher.ApprovalEvent{
		Event:             publisher.EventApprovalRequested,
		ApprovalRequestID: request.ID,
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		ProviderID:        order.ProviderID,
		TotalHours:        request.TotalHours,
		TotalAmount:       request.TotalAmount,
	})

	return &request, nil
}
