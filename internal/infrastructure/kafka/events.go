package publisher

// Event payloads consumed by the notification collaborator. Publishing is
// fire-and-forget; engine operations never block on delivery.

type OrderEvent struct {
	Event      string `json:"event"`
	OrderID    string `json:"order_id"`
	QuoteID    string `json:"quote_id,omitempty"`
	CustomerID string `json:"customer_id"`
	ProviderID string `json:"provider_id"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

type ApprovalEvent struct {
	Event             string  `json:"event"`
	ApprovalRequestID string  `json:"approval_request_id"`
	OrderID           string  `json:"order_id"`
	CustomerID        string  `json:"customer_id"`
	ProviderID        string  `json:"provider_id"`
	Decision          string  `json:"decision,omitempty"`
	TotalHours        float64 `json:"total_hours"`
	TotalAmount       int64   `json:"total_amount"`
}

type PayoutEvent struct {
	Event     string `json:"event"`
	PayoutID  string `json:"payout_id"`
	OrderID   string `json:"order_id"`
	NetAmount int64  `json:"net_amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

const (
	EventProposalSubmitted = "ProposalSubmitted"
	EventProposalAccepted  = "ProposalAccepted"
	EventQuoteCancelled    = "QuoteCancelled"
	EventEscrowHeld        = "EscrowHeld"
	EventEscrowRefunded    = "EscrowRefunded"
	EventApprovalRequested = "ApprovalRequested"
	EventApprovalResolved  = "ApprovalResolved"
	EventOrderCompleted    = "OrderCompleted"
	EventPayoutCompleted   = "PayoutCompleted"
	EventPayoutFailed      = "PayoutFailed"
)
