package usecase

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
)

func (ttUc *DefaultTimeTrackingUsecase) GetTimeEntries(orderID string) ([]*domain.TimeEntry, error) {
	return ttUc.timeEntryRepo.GetTimeEntriesByOrderID(orderID)
}

func (ttUc *DefaultTimeTrackingUsecase) GetApprovalRequests(orderID string) ([]*domain.ApprovalRequest, error) {
	return ttUc.approvalRepo.GetApprovalRequestsByOrderID(orderID)
}

// GetTimeSummary aggregates the order's entries into the dashboard totals.
// Rejected hours count as logged but nowhere else.
func (ttUc *DefaultTimeTrackingUsecase) GetTimeSummary(orderID string) (*timetrackingdto.TimeSummaryOutput, error) {
	entries, err := ttUc.timeEntryRepo.GetTimeEntriesByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	summary := timetrackingdto.TimeSummaryOutput{OrderID: orderID}
	for _, entry := range entries {
		summary.TotalLoggedHours += entry.Hours
		switch entry.Status {
		case domain.EntryCustomerApproved:
			summary.TotalApprovedHours += entry.Hours
		case domain.EntryBilled, domain.EntryPlatformHeld:
			summary.TotalApprovedHours += entry.Hours
			summary.TotalBilledHours += entry.Hours
			summary.TotalBilledAmount += entry.BillableAmount
		case domain.EntryPaidOut:
			summary.TotalApprovedHours += entry.Hours
			summary.TotalBilledHours += entry.Hours
			summary.TotalPaidOutHours += entry.Hours
			summary.TotalBilledAmount += entry.BillableAmount
		}
	}
	return &summary, nil
}
