package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type ApprovalRequestModel struct {
	ID               string                `gorm:"primaryKey"`
	OrderID          string                `gorm:"index;not null"`
	ProviderID       string                `gorm:"not null"`
	CustomerID       string                `gorm:"not null"`
	TimeEntryIDs     string                `gorm:"type:jsonb;not null"`
	TotalHours       float64               `gorm:"not null"`
	TotalAmount      int64                 `gorm:"not null"`
	Status           domain.ApprovalStatus `gorm:"index;not null"`
	ApprovedEntryIDs string                `gorm:"type:jsonb"`
	ProviderMessage  string
	CustomerFeedback string
	SubmittedAt      time.Time
	ResolvedAt       *time.Time
}

func (ApprovalRequestModel) TableName() string {
	return "approval_requests"
}
