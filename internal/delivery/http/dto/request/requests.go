package request

import "time"

type CreateQuoteRequest struct {
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
}

type SubmitProposalRequest struct {
	TotalAmount int64  `json:"total_amount" binding:"required,gt=0"`
	HourlyRate  int64  `json:"hourly_rate" binding:"gte=0"`
	Currency    string `json:"currency" binding:"required"`
	Message     string `json:"message"`
}

type AcceptProposalRequest struct {
	ProposalID string `json:"proposal_id" binding:"required"`
}

type CaptureFundsRequest struct {
	Currency string `json:"currency"`
}

type CaptureAdditionalRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type RefundRequest struct {
	Reason string `json:"reason"`
}

type LogTimeRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Hours       float64   `json:"hours" binding:"required,gt=0"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

type SubmitForApprovalRequest struct {
	TimeEntryIDs []string `json:"time_entry_ids" binding:"required,min=1"`
	Message      string   `json:"message"`
}

type ResolveApprovalRequest struct {
	Decision         string   `json:"decision" binding:"required"`
	ApprovedEntryIDs []string `json:"approved_entry_ids"`
	Feedback         string   `json:"feedback"`
}

type PaymentWebhookRequest struct {
	Reference string `json:"reference" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
