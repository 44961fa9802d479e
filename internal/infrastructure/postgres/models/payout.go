package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type PayoutModel struct {
	ID                string              `gorm:"primaryKey"`
	OrderID           string              `gorm:"index;not null"`
	EscrowRecordID    string              `gorm:"not null"`
	TimeEntryIDs      string              `gorm:"type:jsonb;not null"`
	NetAmount         int64               `gorm:"not null"`
	Currency          string              `gorm:"not null"`
	Status            domain.PayoutStatus `gorm:"index;not null"`
	TransferReference string              `gorm:"index"`
	IdempotencyKey    string              `gorm:"uniqueIndex;not null"`
	Attempts          int                 `gorm:"not null;default:0"`
	LastError         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (PayoutModel) TableName() string {
	return "payouts"
}

type ProviderAccountModel struct {
	ProviderID string `gorm:"primaryKey"`
	Kind       string `gorm:"not null"` // individual, company, employee
	AccountRef string `gorm:"not null"`
	CompanyID  string `gorm:"index"`
}

func (ProviderAccountModel) TableName() string {
	return "provider_accounts"
}
