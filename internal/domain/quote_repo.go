package domain

type QuoteRepository interface {
	CreateQuote(quote *Quote) error
	GetQuoteByID(quoteID string) (*Quote, error)
	UpdateQuoteStatus(quoteID string, oldStatus, newStatus QuoteStatus) error

	CreateProposal(proposal *Proposal) error
	GetProposalByID(proposalID string) (*Proposal, error)
	GetProposalsByQuoteID(quoteID string) ([]*Proposal, error)
	UpdateProposalStatus(proposalID string, oldStatus, newStatus ProposalStatus) error

	// AcceptProposal runs the whole acceptance as one serializable transaction:
	// quote -> PROPOSAL_ACCEPTED, winner -> ACCEPTED, every sibling ->
	// DECLINED, order created. A quote that already left OPEN fails with
	// ErrConcurrentAcceptance; the loser must not retry.
	AcceptProposal(quoteID, proposalID string, order *Order) error
}
