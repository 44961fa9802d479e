package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
	"github.com/jaevor/go-nanoid"
)

func (quoteUc *DefaultQuoteUsecase) SubmitProposal(input *quotedto.SubmitProposalInput) (*domain.Proposal, error) {
	quote, err := quoteUc.quoteRepo.GetQuoteByID(input.QuoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteOpen {
		return nil, domain.ErrQuoteClosed
	}
	if input.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: proposal amount must be positive", domain.ErrValidation)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", domain.ErrValidation)
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	proposal := domain.Proposal{
		ID:          idGenerator(),
		QuoteID:     quote.ID,
		ProviderID:  input.ProviderID,
		TotalAmount: input.TotalAmount,
		HourlyRate:  input.HourlyRate,
		Currency:    input.Currency,
		Message:     input.Message,
		Status:      domain.ProposalSubmitted,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := quoteUc.quoteRepo.CreateProposal(&proposal); err != nil {
		return nil, err
	}

	quoteUc.metrics.ProposalsSubmittedTotal.WithLabelValues(quote.Category).Inc()
	go func(event publisher.OrderEvent) {
		if err := quoteUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "proposal submitted", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventProposalSubmitted,
		QuoteID:    quote.ID,
		CustomerID: quote.CustomerID,
		ProviderID: proposal.ProviderID,
		Status:     string(proposal.Status),
		Amount:     proposal.TotalAmount,
		Currency:   proposal.Currency,
	})

	return &proposal, nil
}
