package domain

type TimeEntryRepository interface {
	CreateTimeEntry(entry *TimeEntry) error
	GetTimeEntryByID(entryID string) (*TimeEntry, error)
	GetTimeEntriesByOrderID(orderID string) ([]*TimeEntry, error)
	GetBilledEntriesByOrderID(orderID string) ([]*TimeEntry, error)
	CountEntriesByStatuses(orderID string, statuses []TimeEntryStatus) (int64, error)
}

type ApprovalRepository interface {
	GetApprovalRequestByID(requestID string) (*ApprovalRequest, error)
	GetApprovalRequestsByOrderID(orderID string) ([]*ApprovalRequest, error)

	// SubmitForApproval creates the request and flips every referenced entry
	// LOGGED -> SUBMITTED in one transaction. Any entry not in LOGGED fails
	// the whole batch with ErrEntryNotLoggable.
	SubmitForApproval(request *ApprovalRequest) error

	// ResolveApproval commits the customer decision over the request and all
	// referenced entries atomically. Approved entries are billed at
	// hourlyRate in the same commit. A request no longer PENDING fails with
	// ErrApprovalResolved.
	ResolveApproval(requestID string, decision ApprovalDecision, approvedEntryIDs []string, feedback string, hourlyRate int64) (*ApprovalRequest, error)
}
