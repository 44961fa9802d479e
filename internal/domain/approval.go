package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending           ApprovalStatus = "PENDING"
	ApprovalApproved          ApprovalStatus = "APPROVED"
	ApprovalRejected          ApprovalStatus = "REJECTED"
	ApprovalPartiallyApproved ApprovalStatus = "PARTIALLY_APPROVED"
)

type ApprovalDecision string

const (
	DecisionApproved          ApprovalDecision = "APPROVED"
	DecisionRejected          ApprovalDecision = "REJECTED"
	DecisionPartiallyApproved ApprovalDecision = "PARTIALLY_APPROVED"
)

// ApprovalRequest batches time entries submitted together for one customer
// decision. Resolution is all-or-nothing over the request and every
// referenced entry.
type ApprovalRequest struct {
	ID               string
	OrderID          string
	ProviderID       string
	CustomerID       string
	TimeEntryIDs     []string
	TotalHours       float64
	TotalAmount      int64
	Status           ApprovalStatus
	ApprovedEntryIDs []string
	ProviderMessage  string
	CustomerFeedback string
	SubmittedAt      time.Time
	ResolvedAt       *time.Time
}
