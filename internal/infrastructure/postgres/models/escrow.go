package models

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type EscrowModel struct {
	ID                string              `gorm:"primaryKey"`
	OrderID           string              `gorm:"uniqueIndex;not null"`
	GrossAmount       int64               `gorm:"not null"`
	PlatformFeeAmount int64               `gorm:"not null"`
	ProviderAmount    int64               `gorm:"not null"`
	ReleasedAmount    int64               `gorm:"not null;default:0"`
	Currency          string              `gorm:"not null"`
	Status            domain.EscrowStatus `gorm:"index;not null"`
	PaymentReference  string              `gorm:"uniqueIndex;not null"`
	CreatedAt         time.Time           `gorm:"index"`
	UpdatedAt         time.Time
}

func (EscrowModel) TableName() string {
	return "escrow_records"
}

// PaymentEventModel is the dedup ledger for processor webhooks. The unique
// reference+kind pair makes at-least-once delivery exactly-once-applied: the
// insert and the state change share one transaction.
type PaymentEventModel struct {
	ID          uint   `gorm:"primaryKey"`
	Reference   string `gorm:"uniqueIndex:idx_ref_kind;not null"`
	Kind        string `gorm:"uniqueIndex:idx_ref_kind;not null"`
	Amount      int64
	Currency    string
	ProcessedAt time.Time `gorm:"autoCreateTime"`
}

func (PaymentEventModel) TableName() string {
	return "payment_events"
}

// TopUpModel records every issued top-up payment reference. The webhook routes
// a capture confirmation by looking the reference up here, so the escrow id
// never has to be parsed out of the reference string.
type TopUpModel struct {
	Reference      string `gorm:"primaryKey"`
	EscrowRecordID string `gorm:"index;not null"`
	Amount         int64  `gorm:"not null"`
	CreatedAt      time.Time
}

func (TopUpModel) TableName() string {
	return "escrow_top_ups"
}
