package response

import (
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
)

type QuoteResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProposalResponse struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	ProviderID  string    `json:"provider_id"`
	TotalAmount int64     `json:"total_amount"`
	HourlyRate  int64     `json:"hourly_rate"`
	Currency    string    `json:"currency"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	ProposalID  string    `json:"proposal_id"`
	CustomerID  string    `json:"customer_id"`
	ProviderID  string    `json:"provider_id"`
	GrossAmount int64     `json:"gross_amount"`
	HourlyRate  int64     `json:"hourly_rate"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type EscrowResponse struct {
	ID                string `json:"id"`
	OrderID           string `json:"order_id"`
	GrossAmount       int64  `json:"gross_amount"`
	PlatformFeeAmount int64  `json:"platform_fee_amount"`
	ProviderAmount    int64  `json:"provider_amount"`
	ReleasedAmount    int64  `json:"released_amount"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	PaymentReference  string `json:"payment_reference"`
}

type TimeEntryResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Date           time.Time `json:"date"`
	Hours          float64   `json:"hours"`
	Category       string    `json:"category"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	BillableAmount int64     `json:"billable_amount"`
}

type ApprovalRequestResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	TimeEntryIDs     []string   `json:"time_entry_ids"`
	TotalHours       float64    `json:"total_hours"`
	TotalAmount      int64      `json:"total_amount"`
	Status           string     `json:"status"`
	ApprovedEntryIDs []string   `json:"approved_entry_ids,omitempty"`
	ProviderMessage  string     `json:"provider_message,omitempty"`
	CustomerFeedback string     `json:"customer_feedback,omitempty"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

type PayoutResponse struct {
	ID                string   `json:"id"`
	OrderID           string   `json:"order_id"`
	TimeEntryIDs      []string `json:"time_entry_ids"`
	NetAmount         int64    `json:"net_amount"`
	Currency          string   `json:"currency"`
	Status            string   `json:"status"`
	TransferReference string   `json:"transfer_reference,omitempty"`
	Attempts          int      `json:"attempts"`
	LastError         string   `json:"last_error,omitempty"`
}

type TimeSummaryResponse struct {
	OrderID            string  `json:"order_id"`
	TotalLoggedHours   float64 `json:"total_logged_hours"`
	TotalApprovedHours float64 `json:"total_approved_hours"`
	TotalBilledHours   float64 `json:"total_billed_hours"`
	TotalPaidOutHours  float64 `json:"total_paid_out_hours"`
	TotalBilledAmount  int64   `json:"total_billed_amount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromQuote(quote *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          quote.ID,
		CustomerID:  quote.CustomerID,
		Description: quote.Description,
		Category:    quote.Category,
		Status:      string(quote.Status),
		CreatedAt:   quote.CreatedAt,
	}
}

func FromProposal(proposal *domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:          proposal.ID,
		QuoteID:     proposal.QuoteID,
		ProviderID:  proposal.ProviderID,
		TotalAmount: proposal.TotalAmount,
		HourlyRate:  proposal.HourlyRate,
		Currency:    proposal.Currency,
		Message:     proposal.Message,
		Status:      string(proposal.Status),
		CreatedAt:   proposal.CreatedAt,
	}
}

func FromOrder(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		QuoteID:     order.QuoteID,
		ProposalID:  order.ProposalID,
		CustomerID:  order.CustomerID,
		ProviderID:  order.ProviderID,
		GrossAmount: order.GrossAmount,
		HourlyRate:  order.HourlyRate,
		Currency:    order.Currency,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}

func FromEscrow(record *domain.EscrowRecord) EscrowResponse {
	return EscrowResponse{
		ID:                record.ID,
		OrderID:           record.OrderID,
		GrossAmount:       record.GrossAmount,
		PlatformFeeAmount: record.PlatformFeeAmount,
		ProviderAmount:    record.ProviderAmount,
		ReleasedAmount:    record.ReleasedAmount,
		Currency:          record.Currency,
		Status:            string(record.Status),
		PaymentReference:  record.PaymentReference,
	}
}

func FromTimeEntry(entry *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:             entry.ID,
		OrderID:        entry.OrderID,
		Date:           entry.Date,
		Hours:          entry.Hours,
		Category:       string(entry.Category),
		Description:    entry.Description,
		Status:         string(entry.Status),
		BillableAmount: entry.BillableAmount,
	}
}

func FromApprovalRequest(request *domain.ApprovalRequest) ApprovalRequestResponse {
	return ApprovalRequestResponse{
		ID:               request.ID,
		OrderID:          request.OrderID,
		TimeEntryIDs:     request.TimeEntryIDs,
		TotalHours:       request.TotalHours,
		TotalAmount:      request.TotalAmount,
		Status:           string(request.Status),
		ApprovedEntryIDs: request.ApprovedEntryIDs,
		ProviderMessage:  request.ProviderMessage,
		CustomerFeedback: request.CustomerFeedback,
		SubmittedAt:      request.SubmittedAt,
		ResolvedAt:       request.ResolvedAt,
	}
}

func FromPayout(payout *domain.Payout) PayoutResponse {
	return PayoutResponse{
		ID:                payout.ID,
		OrderID:           payout.OrderID,
		TimeEntryIDs:      payout.TimeEntryIDs,
		NetAmount:         payout.NetAmount,
		Currency:          payout.Currency,
		Status:            string(payout.Status),
		TransferReference: payout.TransferReference,
		Attempts:          payout.Attempts,
		LastError:         payout.LastError,
	}
}
