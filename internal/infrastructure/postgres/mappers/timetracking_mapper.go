package mappers

import (
	"encoding/json"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
)

func ToDomainTimeEntry(model *models.TimeEntryModel) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:             model.ID,
		OrderID:        model.OrderID,
		ProviderID:     model.ProviderID,
		Date:           model.Date,
		Hours:          model.Hours,
		Category:       model.Category,
		Description:    model.Description,
		Status:         model.Status,
		BillableAmount: model.BillableAmount,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMTimeEntry(entry *domain.TimeEntry) *models.TimeEntryModel {
	return &models.TimeEntryModel{
		ID:             entry.ID,
		OrderID:        entry.OrderID,
		ProviderID:     entry.ProviderID,
		Date:           entry.Date,
		Hours:          entry.Hours,
		Category:       entry.Category,
		Description:    entry.Description,
		Status:         entry.Status,
		BillableAmount: entry.BillableAmount,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}

func ToDomainApprovalRequest(model *models.ApprovalRequestModel) *domain.ApprovalRequest {
	return &domain.ApprovalRequest{
		ID:               model.ID,
		OrderID:          model.OrderID,
		ProviderID:       model.ProviderID,
		CustomerID:       model.CustomerID,
		TimeEntryIDs:     decodeIDs(model.TimeEntryIDs),
		TotalHours:       model.TotalHours,
		TotalAmount:      model.TotalAmount,
		Status:           model.Status,
		ApprovedEntryIDs: decodeIDs(model.ApprovedEntryIDs),
		ProviderMessage:  model.ProviderMessage,
		CustomerFeedback: model.CustomerFeedback,
		SubmittedAt:      model.SubmittedAt,
		ResolvedAt:       model.ResolvedAt,
	}
}

func ToGORMApprovalRequest(request *domain.ApprovalRequest) *models.ApprovalRequestModel {
	return &models.ApprovalRequestModel{
		ID:               request.ID,
		OrderID:          request.OrderID,
		ProviderID:       request.ProviderID,
		CustomerID:       request.CustomerID,
		TimeEntryIDs:     EncodeIDs(request.TimeEntryIDs),
		TotalHours:       request.TotalHours,
		TotalAmount:      request.TotalAmount,
		Status:           request.Status,
		ApprovedEntryIDs: EncodeIDs(request.ApprovedEntryIDs),
		ProviderMessage:  request.ProviderMessage,
		CustomerFeedback: request.CustomerFeedback,
		SubmittedAt:      request.SubmittedAt,
		ResolvedAt:       request.ResolvedAt,
	}
}

func ToDomainPayout(model *models.PayoutModel) *domain.Payout {
	return &domain.Payout{
		ID:                model.ID,
		OrderID:           model.OrderID,
		EscrowRecordID:    model.EscrowRecordID,
		TimeEntryIDs:      decodeIDs(model.TimeEntryIDs),
		NetAmount:         model.NetAmount,
		Currency:          model.Currency,
		Status:            model.Status,
		TransferReference: model.TransferReference,
		IdempotencyKey:    model.IdempotencyKey,
		Attempts:          model.Attempts,
		LastError:         model.LastError,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMPayout(payout *domain.Payout) *models.PayoutModel {
	return &models.PayoutModel{
		ID:                payout.ID,
		OrderID:           payout.OrderID,
		EscrowRecordID:    payout.EscrowRecordID,
		TimeEntryIDs:      EncodeIDs(payout.TimeEntryIDs),
		NetAmount:         payout.NetAmount,
		Currency:          payout.Currency,
		Status:            payout.Status,
		TransferReference: payout.TransferReference,
		IdempotencyKey:    payout.IdempotencyKey,
		Attempts:          payout.Attempts,
		LastError:         payout.LastError,
		CreatedAt:         payout.CreatedAt,
		UpdatedAt:         payout.UpdatedAt,
	}
}

// EncodeIDs stores an id list as a jsonb array.
func EncodeIDs(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	v, _ := json.Marshal(ids)
	return string(v)
}

func decodeIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}
