package domain

import "errors"

var (
	// validation errors: caller-correctable, never retried
	ErrValidation             = errors.New("validation failed")
	ErrQuoteClosed            = errors.New("quote is closed for proposals")
	ErrEntryNotLoggable       = errors.New("time entry is not in logged state")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// conflict errors: action no longer possible, caller must re-fetch
	ErrConcurrentAcceptance = errors.New("proposal already accepted concurrently")
	ErrApprovalResolved     = errors.New("approval request already resolved")

	// external-dependency errors: retried internally, then escalated
	ErrCaptureFailed = errors.New("payment capture failed")
	ErrPayoutFailed  = errors.New("payout transfer failed")

	// invariant violations: fatal, never silently swallowed
	ErrInsufficientEscrowBalance = errors.New("insufficient escrow balance")
	ErrCurrencyMismatch          = errors.New("currency mismatch")

	ErrNoBillableEntries = errors.New("no billed entries awaiting payout")

	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)
