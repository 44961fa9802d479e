package domain

type PayoutRepository interface {
	GetPayoutByID(payoutID string) (*Payout, error)
	GetPayoutByIdempotencyKey(key string) (*Payout, error)
	GetPayoutByTransferReference(transferReference string) (*Payout, error)
	GetPayoutsByOrderID(orderID string) ([]*Payout, error)
	FindFailedPayouts(maxAttempts int) ([]*Payout, error)

	// FindStalledPayouts returns PENDING payouts whose transfer call was never
	// accepted, left behind when the process died between BeginPayout and the
	// transfer. Their entries are already PLATFORM_HELD and the escrow amount
	// released, so recovery only replays the transfer.
	FindStalledPayouts(olderThanSeconds int64) ([]*Payout, error)

	// BeginPayout creates the payout row, flips the referenced entries
	// BILLED -> PLATFORM_HELD and releases the escrow amount, all in one
	// transaction. It is called before the external transfer so local state
	// never claims success the processor has not confirmed.
	BeginPayout(payout *Payout) error

	// MarkTransferAccepted records the processor-side transfer reference once
	// the transfer call was accepted.
	MarkTransferAccepted(payoutID, transferReference string) error

	// ConfirmTransfer applies the processor transfer confirmation exactly
	// once: entries PLATFORM_HELD -> PAID_OUT, payout -> TRANSFERRED, and the
	// order -> PAID_OUT when it was CUSTOMER_COMPLETED and nothing billable
	// remains. Deduped by transfer reference.
	ConfirmTransfer(transferReference string) (payout *Payout, applied bool, err error)

	// FailPayout rolls the attempt back: payout -> FAILED, entries
	// PLATFORM_HELD -> BILLED, escrow amount un-released. The idempotency key
	// stays on the row so a retry reuses it.
	FailPayout(payoutID string, reason string) error

	// ResumePayout re-arms a FAILED payout for another attempt under the same
	// idempotency key.
	ResumePayout(payoutID string) (*Payout, error)
}
