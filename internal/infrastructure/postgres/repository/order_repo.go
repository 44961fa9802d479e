package repository

import (
	"errors"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/mappers"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.First(&model, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) GetOrderByQuoteID(quoteID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.First(&model, "quote_id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

// UpdateOrderStatus is a compare-and-swap on the status column; a stale
// oldStatus means the caller lost a race or requested an illegal transition.
func (r *DefaultOrderRepository) UpdateOrderStatus(orderID string, oldStatus, newStatus domain.OrderStatus) error {
	if !domain.CanTransitionOrder(oldStatus, newStatus) {
		return domain.ErrInvalidStateTransition
	}
	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, oldStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}
