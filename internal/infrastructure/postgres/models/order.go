package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type OrderModel struct {
	ID          string             `gorm:"primaryKey"`
	QuoteID     string             `gorm:"uniqueIndex;not null"`
	ProposalID  string             `gorm:"not null"`
	CustomerID  string             `gorm:"index;not null"`
	ProviderID  string             `gorm:"index;not null"`
	GrossAmount int64              `gorm:"not null"`
	HourlyRate  int64              `gorm:"not null"`
	Currency    string             `gorm:"not null"`
	Status      domain.OrderStatus `gorm:"index;not null"`
	CreatedAt   time.Time          `gorm:"index"`
	UpdatedAt   time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
