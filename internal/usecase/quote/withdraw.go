package usecase

import (
	"log/slog"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
)

// WithdrawProposal lets a provider pull a proposal that has not been decided
// yet. Anything past SUBMITTED fails the compare-and-swap in the repository.
func (quoteUc *DefaultQuoteUsecase) WithdrawProposal(input *quotedto.WithdrawProposalInput) error {
	proposal, err := quoteUc.quoteRepo.GetProposalByID(input.ProposalID)
	if err != nil {
		return err
	}
	if input.ActorID != proposal.ProviderID {
		return domain.ErrPermissionDenied
	}
	return quoteUc.quoteRepo.UpdateProposalStatus(proposal.ID, domain.ProposalSubmitted, domain.ProposalWithdrawn)
}

// CancelQuote closes an open quote and declines every pending proposal.
// A quote whose proposal was already accepted cannot be cancelled here; the
// resulting order has its own cancellation path.
func (quoteUc *DefaultQuoteUsecase) CancelQuote(input *quotedto.CancelQuoteInput) error {
	quote, err := quoteUc.quoteRepo.GetQuoteByID(input.QuoteID)
	if err != nil {
		return err
	}
	if input.ActorID != quote.CustomerID {
		return domain.ErrPermissionDenied
	}
	if err := quoteUc.quoteRepo.UpdateQuoteStatus(quote.ID, domain.QuoteOpen, domain.QuoteCancelled); err != nil {
		return err
	}

	proposals, err := quoteUc.quoteRepo.GetProposalsByQuoteID(quote.ID)
	if err != nil {
		return err
	}
	for _, proposal := range proposals {
		if proposal.Status != domain.ProposalSubmitted {
			continue
		}
		if err := quoteUc.quoteRepo.UpdateProposalStatus(proposal.ID, domain.ProposalSubmitted, domain.ProposalDeclined); err != nil {
			slog.Error("failed to decline proposal on quote cancel", "proposal_id", proposal.ID, "error", err.Error())
		}
	}

	go func(event publisher.OrderEvent) {
		if err := quoteUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "quote cancelled", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventQuoteCancelled,
		QuoteID:    quote.ID,
		CustomerID: quote.CustomerID,
		Status:     string(domain.QuoteCancelled),
	})
	return nil
}
