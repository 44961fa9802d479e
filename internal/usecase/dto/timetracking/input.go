package timetrackingdto

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type LogTimeInput struct {
	OrderID     string
	ActorID     string
	Date        time.Time
	Hours       float64
	Category    domain.TimeEntryCategory
	Description string
}

type SubmitForApprovalInput struct {
	OrderID         string
	ActorID         string
	TimeEntryIDs    []string
	ProviderMessage string
}

type ResolveApprovalInput struct {
	ApprovalRequestID string
	ActorID           string
	Decision          domain.ApprovalDecision
	ApprovedEntryIDs  []string
	CustomerFeedback  string
}

type CompleteOrderInput struct {
	OrderID string
	ActorID string
}
