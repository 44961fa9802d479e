package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

// Time entries are append-only; rows transition status but are never deleted.
type TimeEntryModel struct {
	ID             string                   `gorm:"primaryKey"`
	OrderID        string                   `gorm:"index;not null"`
	ProviderID     string                   `gorm:"index;not null"`
	Date           time.Time                `gorm:"not null"`
	Hours          float64                  `gorm:"not null"`
	Category       domain.TimeEntryCategory `gorm:"not null"`
	Description    string
	Status         domain.TimeEntryStatus `gorm:"index;not null"`
	BillableAmount int64                  `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TimeEntryModel) TableName() string {
	return "time_entries"
}
