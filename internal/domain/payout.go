package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

type PayoutStatus string

const (
	PayoutPending     PayoutStatus = "PENDING"
	PayoutTransferred PayoutStatus = "TRANSFERRED"
	PayoutFailed      PayoutStatus = "FAILED"
)

// Payout is one transfer attempt of held escrow funds to the provider.
// Summed net amounts of successful payouts never exceed the escrow's provider
// share.
type Payout struct {
	ID                string
	OrderID           string
	EscrowRecordID    string
	TimeEntryIDs      []string
	NetAmount         int64
	Currency          string
	Status            PayoutStatus
	TransferReference string
	IdempotencyKey    string
	Attempts          int
	LastError         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PayoutIdempotencyKey derives a stable key from the order and the exact set
// of entries being paid. A retry after a crash regenerates the identical key,
// so the transfer collaborator rejects duplicates instead of executing twice.
func PayoutIdempotencyKey(orderID string, entryIDs []string) string {
	ids := make([]string, len(entryIDs))
	copy(ids, entryIDs)
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(orderID + ":" + strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:16])
}
