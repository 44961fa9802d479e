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

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) CreateEscrow(record *domain.EscrowRecord) error {
	return r.DB.Create(mappers.ToGORMEscrow(record)).Error
}

func (r *DefaultEscrowRepository) GetEscrowByID(escrowID string) (*domain.EscrowRecord, error) {
	return r.getEscrow("id = ?", escrowID)
}

func (r *DefaultEscrowRepository) GetEscrowByOrderID(orderID string) (*domain.EscrowRecord, error) {
	return r.getEscrow("order_id = ?", orderID)
}

func (r *DefaultEscrowRepository) GetEscrowByPaymentReference(reference string) (*domain.EscrowRecord, error) {
	return r.getEscrow("payment_reference = ?", reference)
}

func (r *DefaultEscrowRepository) getEscrow(query string, arg string) (*domain.EscrowRecord, error) {
	var model models.EscrowModel
	if err := r.DB.First(&model, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&model), nil
}

// ConfirmCapture applies a capture confirmation exactly once. The escrow row
// lock serializes concurrent deliveries of the same reference; the event row
// insert and the status changes commit together, so a crash between them is
// impossible and a redelivery after commit is a recorded no-op.
func (r *DefaultEscrowRepository) ConfirmCapture(reference string) (*domain.EscrowRecord, bool, error) {
	var out *domain.EscrowRecord
	applied := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var escrow models.EscrowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&escrow, "payment_reference = ?", reference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		seen, err := eventSeen(tx, reference, string(domain.PaymentEventCaptureSucceeded))
		if err != nil {
			return err
		}
		if seen {
			out = mappers.ToDomainEscrow(&escrow)
			return nil
		}

		if escrow.Status != domain.EscrowPending {
			return fmt.Errorf("%w: capture confirmation for escrow in status %s", domain.ErrInvalidStateTransition, escrow.Status)
		}

		if err := tx.Create(&models.PaymentEventModel{
			Reference: reference,
			Kind:      string(domain.PaymentEventCaptureSucceeded),
			Amount:    escrow.GrossAmount,
			Currency:  escrow.Currency,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.EscrowModel{}).
			Where("id = ?", escrow.ID).
			Update("status", domain.EscrowHeld).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", escrow.OrderID, domain.OrderPendingPayment).
			Update("status", domain.OrderEscrowHeld).Error; err != nil {
			return err
		}

		escrow.Status = domain.EscrowHeld
		out = mappers.ToDomainEscrow(&escrow)
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, applied, nil
}

func (r *DefaultEscrowRepository) RecordTopUpReference(escrowID, reference string, amount int64) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.TopUpModel{
		Reference:      reference,
		EscrowRecordID: escrowID,
		Amount:         amount,
	}).Error
}

func (r *DefaultEscrowRepository) GetTopUpEscrowID(reference string) (string, error) {
	var topUp models.TopUpModel
	if err := r.DB.First(&topUp, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return topUp.EscrowRecordID, nil
}

// ConfirmTopUp credits an additional-hours capture onto the existing record.
// All three amounts move together so gross == fee + provider stays true.
func (r *DefaultEscrowRepository) ConfirmTopUp(escrowID, reference string, gross, platformFee, providerAmount int64) (bool, error) {
	applied := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var escrow models.EscrowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&escrow, "id = ?", escrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		seen, err := eventSeen(tx, reference, string(domain.PaymentEventCaptureSucceeded))
		if err != nil {
			return err
		}
		if seen {
			return nil
		}

		if escrow.Status != domain.EscrowHeld && escrow.Status != domain.EscrowPartiallyReleased {
			return fmt.Errorf("%w: top-up of escrow in status %s", domain.ErrInvalidStateTransition, escrow.Status)
		}
		if gross != platformFee+providerAmount {
			return domain.ErrInsufficientEscrowBalance
		}

		if err := tx.Create(&models.PaymentEventModel{
			Reference: reference,
			Kind:      string(domain.PaymentEventCaptureSucceeded),
			Amount:    gross,
			Currency:  escrow.Currency,
		}).Error; err != nil {
			return err
		}

		newStatus := domain.EscrowHeld
		if escrow.ReleasedAmount > 0 {
			newStatus = domain.EscrowPartiallyReleased
		}

		if err := tx.Model(&models.EscrowModel{}).
			Where("id = ?", escrowID).
			Updates(map[string]interface{}{
				"gross_amount":        escrow.GrossAmount + gross,
				"platform_fee_amount": escrow.PlatformFeeAmount + platformFee,
				"provider_amount":     escrow.ProviderAmount + providerAmount,
				"status":              newStatus,
			}).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// Release decrements the held balance for a payout. Anything above the
// remaining held funds is an invariant violation and aborts.
func (r *DefaultEscrowRepository) Release(escrowID string, amount int64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return releaseEscrow(tx, escrowID, amount)
	})
}

// Unrelease puts a released amount back after a failed transfer.
func (r *DefaultEscrowRepository) Unrelease(escrowID string, amount int64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return unreleaseEscrow(tx, escrowID, amount)
	})
}

// Refund is only legal before any work was billed or paid; the billed-entry
// check runs inside the same transaction as the status flip.
func (r *DefaultEscrowRepository) Refund(escrowID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var escrow models.EscrowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&escrow, "id = ?", escrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if escrow.Status != domain.EscrowPending && escrow.Status != domain.EscrowHeld {
			return fmt.Errorf("%w: refund of escrow in status %s", domain.ErrInvalidStateTransition, escrow.Status)
		}
		if escrow.ReleasedAmount != 0 {
			return domain.ErrInvalidStateTransition
		}

		var billed int64
		if err := tx.Model(&models.TimeEntryModel{}).
			Where("order_id = ? AND status IN ?", escrow.OrderID, []domain.TimeEntryStatus{
				domain.EntryBilled, domain.EntryPlatformHeld, domain.EntryPaidOut,
			}).Count(&billed).Error; err != nil {
			return err
		}
		if billed > 0 {
			return fmt.Errorf("%w: order has billed or paid time entries", domain.ErrInvalidStateTransition)
		}

		if err := tx.Model(&models.EscrowModel{}).
			Where("id = ?", escrowID).
			Update("status", domain.EscrowRefunded).Error; err != nil {
			return err
		}

		return tx.Model(&models.OrderModel{}).
			Where("id = ?", escrow.OrderID).
			Update("status", domain.OrderCancelled).Error
	})
}

func (r *DefaultEscrowRepository) FindStuckPending(olderThanSeconds int64) ([]*domain.EscrowRecord, error) {
	var escrowModels []models.EscrowModel
	cutoff := time.Now().Add(-time.Duration(olderThanSeconds) * time.Second)
	if err := r.DB.
		Where("status = ?", domain.EscrowPending).
		Where("created_at < ?", cutoff).
		Find(&escrowModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.EscrowRecord, len(escrowModels))
	for i, model := range escrowModels {
		records[i] = mappers.ToDomainEscrow(&model)
	}
	return records, nil
}

func eventSeen(tx *gorm.DB, reference, kind string) (bool, error) {
	var count int64
	if err := tx.Model(&models.PaymentEventModel{}).
		Where("reference = ? AND kind = ?", reference, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
