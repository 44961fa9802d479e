package quotedto

import "github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"

type QuoteOutput struct {
	Quote     *domain.Quote
	Proposals []*domain.Proposal
}

type AcceptProposalOutput struct {
	Quote    *domain.Quote
	Proposal *domain.Proposal
	Order    *domain.Order
}
