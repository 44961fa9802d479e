package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type QuoteModel struct {
	ID          string `gorm:"primaryKey"`
	CustomerID  string `gorm:"index;not null"`
	Description string
	Category    string             `gorm:"index"`
	Status      domain.QuoteStatus `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (QuoteModel) TableName() string {
	return "quotes"
}

type ProposalModel struct {
	ID          string `gorm:"primaryKey"`
	QuoteID     string `gorm:"index;not null"`
	ProviderID  string `gorm:"index;not null"`
	TotalAmount int64  `gorm:"not null"`
	HourlyRate  int64  `gorm:"not null"`
	Currency    string `gorm:"not null"`
	Message     string
	Status      domain.ProposalStatus `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProposalModel) TableName() string {
	return "proposals"
}
