package domain

type EscrowRepository interface {
	CreateEscrow(record *EscrowRecord) error
	GetEscrowByID(escrowID string) (*EscrowRecord, error)
	GetEscrowByOrderID(orderID string) (*EscrowRecord, error)
	GetEscrowByPaymentReference(reference string) (*EscrowRecord, error)

	// ConfirmCapture applies a processor capture confirmation exactly once.
	// The payment reference is recorded in the same transaction that moves the
	// escrow PENDING -> HELD and the order -> ESCROW_HELD; a reference seen
	// before returns applied=false and changes nothing.
	ConfirmCapture(reference string) (record *EscrowRecord, applied bool, err error)

	// RecordTopUpReference stores an issued top-up payment reference so the
	// capture confirmation can be routed back to its escrow by lookup.
	RecordTopUpReference(escrowID, reference string, amount int64) error

	// GetTopUpEscrowID resolves a recorded top-up reference to its escrow id,
	// ErrNotFound when the reference was never issued as a top-up.
	GetTopUpEscrowID(reference string) (string, error)

	// ConfirmTopUp credits an additional-hours capture onto the existing
	// escrow record, keeping gross == fee + provider. Deduped by reference.
	ConfirmTopUp(escrowID, reference string, gross, platformFee, providerAmount int64) (applied bool, err error)

	// Release decrements the held balance; amounts above the remaining held
	// funds fail with ErrInsufficientEscrowBalance.
	Release(escrowID string, amount int64) error

	// Unrelease puts a released amount back after a failed transfer.
	Unrelease(escrowID string, amount int64) error

	Refund(escrowID string) error
	FindStuckPending(olderThanSeconds int64) ([]*EscrowRecord, error)
}
