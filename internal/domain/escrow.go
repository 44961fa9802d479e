package domain

import "time"

type EscrowStatus string

const (
	EscrowPending           EscrowStatus = "PENDING"
	EscrowHeld              EscrowStatus = "HELD"
	EscrowPartiallyReleased EscrowStatus = "PARTIALLY_RELEASED"
	EscrowReleased          EscrowStatus = "RELEASED"
	EscrowRefunded          EscrowStatus = "REFUNDED"
)

// EscrowRecord holds the captured customer funds for one order.
// GrossAmount == PlatformFeeAmount + ProviderAmount at all times; held funds
// only decrease through a payout release or a refund.
type EscrowRecord struct {
	ID                string
	OrderID           string
	GrossAmount       int64
	PlatformFeeAmount int64
	ProviderAmount    int64
	ReleasedAmount    int64
	Currency          string
	Status            EscrowStatus
	PaymentReference  string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HeldBalance is what is still available for payout release.
func (e *EscrowRecord) HeldBalance() int64 {
	return e.ProviderAmount - e.ReleasedAmount
}

// ComputeFeeSplit splits a gross amount in minor units into the platform fee
// and the provider share. feeBps is the platform fee in basis points. An exact
// half rounds toward the platform so fees are never systematically
// under-charged.
func ComputeFeeSplit(gross int64, feeBps int64) (platformFee, providerAmount int64) {
	platformFee = (gross*feeBps + 5000) / 10000
	providerAmount = gross - platformFee
	return platformFee, providerAmount
}
