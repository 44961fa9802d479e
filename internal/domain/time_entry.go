package domain

import "time"

type TimeEntryStatus string

const (
	EntryLogged           TimeEntryStatus = "LOGGED"
	EntrySubmitted        TimeEntryStatus = "SUBMITTED"
	EntryCustomerApproved TimeEntryStatus = "CUSTOMER_APPROVED"
	EntryCustomerRejected TimeEntryStatus = "CUSTOMER_REJECTED"
	EntryBilled           TimeEntryStatus = "BILLED"
	EntryPlatformHeld     TimeEntryStatus = "PLATFORM_HELD"
	EntryPaidOut          TimeEntryStatus = "PAID_OUT"
)

type TimeEntryCategory string

const (
	CategoryOriginal   TimeEntryCategory = "ORIGINAL"
	CategoryAdditional TimeEntryCategory = "ADDITIONAL"
)

// TimeEntry is never deleted. Rejected entries stay as immutable history;
// re-logged work becomes a fresh entry.
type TimeEntry struct {
	ID             string
	OrderID        string
	ProviderID     string
	Date           time.Time
	Hours          float64
	Category       TimeEntryCategory
	Description    string
	Status         TimeEntryStatus
	BillableAmount int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var entryTransitions = map[TimeEntryStatus][]TimeEntryStatus{
	EntryLogged:           {EntrySubmitted},
	EntrySubmitted:        {EntryCustomerApproved, EntryCustomerRejected},
	EntryCustomerApproved: {EntryBilled},
	EntryBilled:           {EntryPlatformHeld},
	EntryPlatformHeld:     {EntryPaidOut, EntryBilled},
}

// CanTransitionEntry reports whether from -> to is a legal time entry
// transition. PLATFORM_HELD -> BILLED is the payout failure rollback; every
// other path is strictly forward, CUSTOMER_REJECTED and PAID_OUT are terminal.
func CanTransitionEntry(from, to TimeEntryStatus) bool {
	for _, next := range entryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
