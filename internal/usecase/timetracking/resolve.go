package usecase

import (
	"fmt"
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
)

// ResolveApproval commits the customer decision. Approved entries are billed
// at the order's hourly rate in the same transaction; the rest become
// immutable rejected history.
func (ttUc *DefaultTimeTrackingUsecase) ResolveApproval(input *timetrackingdto.ResolveApprovalInput) (*domain.ApprovalRequest, error) {
	request, err := ttUc.approvalRepo.GetApprovalRequestByID(input.ApprovalRequestID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != request.CustomerID {
		return nil, domain.ErrPermissionDenied
	}
	order, err := ttUc.orderRepo.GetOrderByID(request.OrderID)
	if err != nil {
		return nil, err
	}

	approvedEntryIDs, err := approvedEntries(request, input.Decision, input.ApprovedEntryIDs)
	if err != nil {
		return nil, err
	}

	resolved, err := ttUc.approvalRepo.ResolveApproval(request.ID, input.Decision, approvedEntryIDs, input.CustomerFeedback, order.HourlyRate)
	if err != nil {
		return nil, err
	}

	ttUc.metrics.ApprovalsResolvedTotal.WithLabelValues(string(input.Decision)).Inc()
	go func(event publisher.ApprovalEvent) {
		if err := ttUc.events.PublishApprovalEvent(event); err != nil {
			slog.Error("failed to publish kafka approval event", "stage", "approval resolved", "error", err.Error())
		}
	}(publisher.ApprovalEvent{
		Event:             publisher.EventApprovalResolved,
		ApprovalRequestID: resolved.ID,
		OrderID:           resolved.OrderID,
		CustomerID:        resolved.CustomerID,
		ProviderID:        resolved.ProviderID,
		Decision:          string(input.Decision),
		TotalHours:        resolved.TotalHours,
		TotalAmount:       resolved.TotalAmount,
	})

	return resolved, nil
}

// approvedEntries maps the decision onto the concrete entry set: APPROVED
// takes the whole request, REJECTED none, PARTIALLY_APPROVED a non-empty
// proper subset named by the caller.
func approvedEntries(request *domain.ApprovalRequest, decision domain.ApprovalDecision, requested []string) ([]string, error) {
	switch decision {
	case domain.DecisionApproved:
		return request.TimeEntryIDs, nil

	case domain.DecisionRejected:
		return nil, nil

	case domain.DecisionPartiallyApproved:
		if len(requested) == 0 {
			return nil, fmt.Errorf("%w: partial approval requires approved entry ids", domain.ErrValidation)
		}
		if len(requested) >= len(request.TimeEntryIDs) {
			return nil, fmt.Errorf("%w: partial approval must leave at least one entry rejected", domain.ErrValidation)
		}
		inRequest := make(map[string]bool, len(request.TimeEntryIDs))
		for _, entryID := range request.TimeEntryIDs {
			inRequest[entryID] = true
		}
		for _, entryID := range requested {
			if !inRequest[entryID] {
				return nil, fmt.Errorf("%w: entry %s is not part of the approval request", domain.ErrValidation, entryID)
			}
		}
		return requested, nil

	default:
		return nil, fmt.Errorf("%w: unknown approval decision %s", domain.ErrValidation, decision)
	}
}
