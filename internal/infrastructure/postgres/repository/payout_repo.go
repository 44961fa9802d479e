package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/mappers"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPayoutRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutRepository(db *gorm.DB) *DefaultPayoutRepository {
	return &DefaultPayoutRepository{DB: db}
}

func (r *DefaultPayoutRepository) GetPayoutByID(payoutID string) (*domain.Payout, error) {
	return r.getPayout("id = ?", payoutID)
}

func (r *DefaultPayoutRepository) GetPayoutByIdempotencyKey(key string) (*domain.Payout, error) {
	return r.getPayout("idempotency_key = ?", key)
}

func (r *DefaultPayoutRepository) GetPayoutByTransferReference(transferReference string) (*domain.Payout, error) {
	return r.getPayout("transfer_reference = ?", transferReference)
}

func (r *DefaultPayoutRepository) getPayout(query string, arg string) (*domain.Payout, error) {
	var model models.PayoutModel
	if err := r.DB.First(&model, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayout(&model), nil
}

func (r *DefaultPayoutRepository) GetPayoutsByOrderID(orderID string) ([]*domain.Payout, error) {
	var payoutModels []models.PayoutModel
	if err := r.DB.Where("order_id = ?", orderID).Order("created_at ASC").Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]*domain.Payout, len(payoutModels))
	for i, model := range payoutModels {
		payouts[i] = mappers.ToDomainPayout(&model)
	}
	return payouts, nil
}

func (r *DefaultPayoutRepository) FindFailedPayouts(maxAttempts int) ([]*domain.Payout, error) {
	var payoutModels []models.PayoutModel
	if err := r.DB.
		Where("status = ? AND attempts < ?", domain.PayoutFailed, maxAttempts).
		Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]*domain.Payout, len(payoutModels))
	for i, model := range payoutModels {
		payouts[i] = mappers.ToDomainPayout(&model)
	}
	return payouts, nil
}

func (r *DefaultPayoutRepository) FindStalledPayouts(olderThanSeconds int64) ([]*domain.Payout, error) {
	cutoff := time.Now().Add(-time.Duration(olderThanSeconds) * time.Second)
	var payoutModels []models.PayoutModel
	if err := r.DB.
		Where("status = ? AND transfer_reference = '' AND updated_at < ?", domain.PayoutPending, cutoff).
		Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]*domain.Payout, len(payoutModels))
	for i, model := range payoutModels {
		payouts[i] = mappers.ToDomainPayout(&model)
	}
	return payouts, nil
}

// BeginPayout runs before the external transfer call: entries are parked in
// PLATFORM_HELD and the escrow amount released, all in one transaction with
// the payout row. Local state never claims a transfer the processor has not
// confirmed.
func (r *DefaultPayoutRepository) BeginPayout(payout *domain.Payout) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entries []models.TimeEntryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND order_id = ?", payout.TimeEntryIDs, payout.OrderID).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) != len(payout.TimeEntryIDs) {
			return domain.ErrNotFound
		}

		var total int64
		for _, entry := range entries {
			if entry.Status != domain.EntryBilled {
				return fmt.Errorf("%w: entry %s is %s", domain.ErrInvalidStateTransition, entry.ID, entry.Status)
			}
			total += entry.BillableAmount
		}
		if total != payout.NetAmount {
			return fmt.Errorf("%w: payout amount drifted from billed entries", domain.ErrInvalidStateTransition)
		}

		if err := releaseEscrow(tx, payout.EscrowRecordID, payout.NetAmount); err != nil {
			return err
		}

		if err := tx.Model(&models.TimeEntryModel{}).
			Where("id IN ?", payout.TimeEntryIDs).
			Update("status", domain.EntryPlatformHeld).Error; err != nil {
			return err
		}

		payout.Status = domain.PayoutPending
		payout.Attempts = 1
		return tx.Create(mappers.ToGORMPayout(payout)).Error
	})
}

func (r *DefaultPayoutRepository) MarkTransferAccepted(payoutID, transferReference string) error {
	return r.DB.Model(&models.PayoutModel{}).
		Where("id = ?", payoutID).
		Update("transfer_reference", transferReference).Error
}

// ConfirmTransfer applies the processor transfer confirmation exactly once,
// keyed by transfer reference.
func (r *DefaultPayoutRepository) ConfirmTransfer(transferReference string) (*domain.Payout, bool, error) {
	var out *domain.Payout
	applied := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var payout models.PayoutModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payout, "transfer_reference = ?", transferReference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		seen, err := eventSeen(tx, transferReference, string(domain.PaymentEventTransferSucceeded))
		if err != nil {
			return err
		}
		if seen {
			out = mappers.ToDomainPayout(&payout)
			return nil
		}

		if payout.Status != domain.PayoutPending {
			return fmt.Errorf("%w: transfer confirmation for payout in status %s", domain.ErrInvalidStateTransition, payout.Status)
		}

		if err := tx.Create(&models.PaymentEventModel{
			Reference: transferReference,
			Kind:      string(domain.PaymentEventTransferSucceeded),
			Amount:    payout.NetAmount,
			Currency:  payout.Currency,
		}).Error; err != nil {
			return err
		}

		domainPayout := mappers.ToDomainPayout(&payout)
		if err := tx.Model(&models.TimeEntryModel{}).
			Where("id IN ? AND status = ?", domainPayout.TimeEntryIDs, domain.EntryPlatformHeld).
			Update("status", domain.EntryPaidOut).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PayoutModel{}).
			Where("id = ?", payout.ID).
			Update("status", domain.PayoutTransferred).Error; err != nil {
			return err
		}

		// the order is fully drained once no billable work remains
		var open int64
		if err := tx.Model(&models.TimeEntryModel{}).
			Where("order_id = ? AND status IN ?", payout.OrderID, []domain.TimeEntryStatus{
				domain.EntryBilled, domain.EntryPlatformHeld,
			}).Count(&open).Error; err != nil {
			return err
		}
		if open == 0 {
			if err := tx.Model(&models.OrderModel{}).
				Where("id = ? AND status = ?", payout.OrderID, domain.OrderCustomerCompleted).
				Update("status", domain.OrderPaidOut).Error; err != nil {
				return err
			}
		}

		domainPayout.Status = domain.PayoutTransferred
		out = domainPayout
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, applied, nil
}

// FailPayout rolls the attempt back so a retry recomputes the same amount:
// entries return to BILLED, the escrow amount is un-released, the idempotency
// key stays on the row.
func (r *DefaultPayoutRepository) FailPayout(payoutID string, reason string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var payout models.PayoutModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payout, "id = ?", payoutID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if payout.Status != domain.PayoutPending {
			return domain.ErrInvalidStateTransition
		}

		domainPayout := mappers.ToDomainPayout(&payout)
		if err := tx.Model(&models.TimeEntryModel{}).
			Where("id IN ? AND status = ?", domainPayout.TimeEntryIDs, domain.EntryPlatformHeld).
			Update("status", domain.EntryBilled).Error; err != nil {
			return err
		}

		if err := unreleaseEscrow(tx, payout.EscrowRecordID, payout.NetAmount); err != nil {
			return err
		}

		return tx.Model(&models.PayoutModel{}).
			Where("id = ?", payoutID).
			Updates(map[string]interface{}{
				"status":     domain.PayoutFailed,
				"last_error": reason,
			}).Error
	})
}

// ResumePayout re-arms a failed payout for another attempt under the same
// idempotency key.
func (r *DefaultPayoutRepository) ResumePayout(payoutID string) (*domain.Payout, error) {
	var out *domain.Payout

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var payout models.PayoutModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payout, "id = ?", payoutID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if payout.Status != domain.PayoutFailed {
			return domain.ErrInvalidStateTransition
		}

		domainPayout := mappers.ToDomainPayout(&payout)

		var entries []models.TimeEntryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", domainPayout.TimeEntryIDs).
			Find(&entries).Error; err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.Status != domain.EntryBilled {
				return fmt.Errorf("%w: entry %s is %s", domain.ErrInvalidStateTransition, entry.ID, entry.Status)
			}
		}

		if err := releaseEscrow(tx, payout.EscrowRecordID, payout.NetAmount); err != nil {
			return err
		}

		if err := tx.Model(&models.TimeEntryModel{}).
			Where("id IN ?", domainPayout.TimeEntryIDs).
			Update("status", domain.EntryPlatformHeld).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PayoutModel{}).
			Where("id = ?", payoutID).
			Updates(map[string]interface{}{
				"status":   domain.PayoutPending,
				"attempts": payout.Attempts + 1,
			}).Error; err != nil {
			return err
		}

		domainPayout.Status = domain.PayoutPending
		domainPayout.Attempts = payout.Attempts + 1
		out = domainPayout
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func releaseEscrow(tx *gorm.DB, escrowID string, amount int64) error {
	var escrow models.EscrowModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&escrow, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if escrow.Status != domain.EscrowHeld && escrow.Status != domain.EscrowPartiallyReleased {
		return fmt.Errorf("%w: release from escrow in status %s", domain.ErrInvalidStateTransition, escrow.Status)
	}

	remaining := escrow.ProviderAmount - escrow.ReleasedAmount
	if amount <= 0 || amount > remaining {
		return domain.ErrInsufficientEscrowBalance
	}

	newReleased := escrow.ReleasedAmount + amount
	newStatus := domain.EscrowPartiallyReleased
	if newReleased == escrow.ProviderAmount {
		newStatus = domain.EscrowReleased
	}

	return tx.Model(&models.EscrowModel{}).
		Where("id = ?", escrowID).
		Updates(map[string]interface{}{
			"released_amount": newReleased,
			"status":          newStatus,
		}).Error
}

func unreleaseEscrow(tx *gorm.DB, escrowID string, amount int64) error {
	var escrow models.EscrowModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&escrow, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if amount <= 0 || amount > escrow.ReleasedAmount {
		return domain.ErrInsufficientEscrowBalance
	}

	newReleased := escrow.ReleasedAmount - amount
	newStatus := domain.EscrowPartiallyReleased
	if newReleased == 0 {
		newStatus = domain.EscrowHeld
	}

	return tx.Model(&models.EscrowModel{}).
		Where("id = ?", escrowID).
		Updates(map[string]interface{}{
			"released_amount": newReleased,
			"status":          newStatus,
		}).Error
}
