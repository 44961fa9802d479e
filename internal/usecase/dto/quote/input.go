package quotedto

type CreateQuoteInput struct {
	CustomerID  string
	Description string
	Category    string
}

type SubmitProposalInput struct {
	QuoteID     string
	ProviderID  string
	TotalAmount int64
	HourlyRate  int64
	Currency    string
	Message     string
}

type AcceptProposalInput struct {
	QuoteID    string
	ProposalID string
	ActorID    string
}

type WithdrawProposalInput struct {
	ProposalID string
	ActorID    string
}

type CancelQuoteInput struct {
	QuoteID string
	ActorID string
}
