package domain

import "time"

type QuoteStatus string

const (
	QuoteOpen             QuoteStatus = "OPEN"
	QuoteProposalAccepted QuoteStatus = "PROPOSAL_ACCEPTED"
	QuoteCancelled        QuoteStatus = "CANCELLED"
	QuoteWithdrawn        QuoteStatus = "WITHDRAWN"
)

type ProposalStatus string

const (
	ProposalSubmitted ProposalStatus = "SUBMITTED"
	ProposalAccepted  ProposalStatus = "ACCEPTED"
	ProposalDeclined  ProposalStatus = "DECLINED"
	ProposalWithdrawn ProposalStatus = "WITHDRAWN"
)

type Quote struct {
	ID          string
	CustomerID  string
	Description string
	Category    string
	Status      QuoteStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// At most one proposal per quote ever reaches ACCEPTED; all siblings are
// declined in the same transaction that accepts the winner.
type Proposal struct {
	ID          string
	QuoteID     string
	ProviderID  string
	TotalAmount int64
	HourlyRate  int64
	Currency    string
	Message     string
	Status      ProposalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
