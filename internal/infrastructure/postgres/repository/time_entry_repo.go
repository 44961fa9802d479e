package repository

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/mappers"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTimeEntryRepository struct {
	DB *gorm.DB
}

func NewDefaultTimeEntryRepository(db *gorm.DB) *DefaultTimeEntryRepository {
	return &DefaultTimeEntryRepository{DB: db}
}

func (r *DefaultTimeEntryRepository) CreateTimeEntry(entry *domain.TimeEntry) error {
	return r.DB.Create(mappers.ToGORMTimeEntry(entry)).Error
}

func (r *DefaultTimeEntryRepository) GetTimeEntryByID(entryID string) (*domain.TimeEntry, error) {
	var model models.TimeEntryModel
	if err := r.DB.First(&model, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTimeEntry(&model), nil
}

func (r *DefaultTimeEntryRepository) GetTimeEntriesByOrderID(orderID string) ([]*domain.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.DB.Where("order_id = ?", orderID).Order("date ASC, created_at ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

func (r *DefaultTimeEntryRepository) GetBilledEntriesByOrderID(orderID string) ([]*domain.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.DB.
		Where("order_id = ? AND status = ?", orderID, domain.EntryBilled).
		Order("date ASC, created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

func (r *DefaultTimeEntryRepository) CountEntriesByStatuses(orderID string, statuses []domain.TimeEntryStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&models.TimeEntryModel{}).
		Where("order_id = ? AND status IN ?", orderID, statuses).
		Count(&count).Error
	return count, err
}

func toDomainEntries(entryModels []models.TimeEntryModel) []*domain.TimeEntry {
	entries := make([]*domain.TimeEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = mappers.ToDomainTimeEntry(&model)
	}
	return entries
}

type DefaultApprovalRepository struct {
	DB *gorm.DB
}

func NewDefaultApprovalRepository(db *gorm.DB) *DefaultApprovalRepository {
	return &DefaultApprovalRepository{DB: db}
}

func (r *DefaultApprovalRepository) GetApprovalRequestByID(requestID string) (*domain.ApprovalRequest, error) {
	var model models.ApprovalRequestModel
	if err := r.DB.First(&model, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainApprovalRequest(&model), nil
}

func (r *DefaultApprovalRepository) GetApprovalRequestsByOrderID(orderID string) ([]*domain.ApprovalRequest, error) {
	var requestModels []models.ApprovalRequestModel
	if err := r.DB.Where("order_id = ?", orderID).Order("submitted_at ASC").Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.ApprovalRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = mappers.ToDomainApprovalRequest(&model)
	}
	return requests, nil
}

// SubmitForApproval creates the request and flips every referenced entry in
// one transaction. An entry that is not LOGGED anymore fails the whole batch,
// which blocks double submission.
func (r *DefaultApprovalRepository) SubmitForApproval(request *domain.ApprovalRequest) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entries []models.TimeEntryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND order_id = ?", request.TimeEntryIDs, request.OrderID).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) != len(request.TimeEntryIDs) {
			return domain.ErrNotFound
		}
		for _, entry := range entries {
			if entry.Status != domain.EntryLogged {
				return fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotLoggable, entry.ID, entry.Status)
			}
		}

		if err := tx.Model(&models.TimeEntryModel{}).
			Where("id IN ?", request.TimeEntryIDs).
			Update("status", domain.EntrySubmitted).Error; err != nil {
			return err
		}

		return tx.Create(mappers.ToGORMApprovalRequest(request)).Error
	})
}

// ResolveApproval commits the customer decision atomically over the request
// and all referenced entries. A partial failure here would strand entries in
// SUBMITTED with no owner, so everything happens in one commit or not at all.
func (r *DefaultApprovalRepository) ResolveApproval(
	requestID string,
	decision domain.ApprovalDecision,
	approvedEntryIDs []string,
	feedback string,
	hourlyRate int64,
) (*domain.ApprovalRequest, error) {
	var out *domain.ApprovalRequest

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var request models.ApprovalRequestModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if request.Status != domain.ApprovalPending {
			return domain.ErrApprovalResolved
		}

		domainRequest := mappers.ToDomainApprovalRequest(&request)

		approved := map[string]bool{}
		switch decision {
		case domain.DecisionApproved:
			for _, id := range domainRequest.TimeEntryIDs {
				approved[id] = true
			}
		case domain.DecisionPartiallyApproved:
			for _, id := range approvedEntryIDs {
				approved[id] = true
			}
		case domain.DecisionRejected:
			// nothing approved
		default:
			return domain.ErrInvalidStateTransition
		}

		var entries []models.TimeEntryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", domainRequest.TimeEntryIDs).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) != len(domainRequest.TimeEntryIDs) {
			return domain.ErrNotFound
		}

		finalApproved := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Status != domain.EntrySubmitted {
				return fmt.Errorf("%w: entry %s is %s", domain.ErrInvalidStateTransition, entry.ID, entry.Status)
			}

			if approved[entry.ID] {
				// approved entries are billed in the same commit
				billable := int64(math.Round(entry.Hours * float64(hourlyRate)))
				if err := tx.Model(&models.TimeEntryModel{}).
					Where("id = ?", entry.ID).
					Updates(map[string]interface{}{
						"status":          domain.EntryBilled,
						"billable_amount": billable,
					}).Error; err != nil {
					return err
				}
				finalApproved = append(finalApproved, entry.ID)
			} else {
				if err := tx.Model(&models.TimeEntryModel{}).
					Where("id = ?", entry.ID).
					Update("status", domain.EntryCustomerRejected).Error; err != nil {
					return err
				}
			}
		}

		requestStatus := domain.ApprovalApproved
		switch decision {
		case domain.DecisionRejected:
			requestStatus = domain.ApprovalRejected
		case domain.DecisionPartiallyApproved:
			requestStatus = domain.ApprovalPartiallyApproved
		}

		now := time.Now()
		if err := tx.Model(&models.ApprovalRequestModel{}).
			Where("id = ?", requestID).
			Updates(map[string]interface{}{
				"status":             requestStatus,
				"approved_entry_ids": mappers.EncodeIDs(finalApproved),
				"customer_feedback":  feedback,
				"resolved_at":        now,
			}).Error; err != nil {
			return err
		}

		domainRequest.Status = requestStatus
		domainRequest.ApprovedEntryIDs = finalApproved
		domainRequest.CustomerFeedback = feedback
		domainRequest.ResolvedAt = &now
		out = domainRequest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
