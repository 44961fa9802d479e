package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
	"github.com/jaevor/go-nanoid"
)

// AcceptProposal turns the winning proposal into an order awaiting payment.
// The repository runs the whole acceptance as one transaction, so when two
// acceptances race exactly one returns successfully and the other gets
// ErrConcurrentAcceptance.
func (quoteUc *DefaultQuoteUsecase) AcceptProposal(input *quotedto.AcceptProposalInput) (*quotedto.AcceptProposalOutput, error) {
	quote, err := quoteUc.quoteRepo.GetQuoteByID(input.QuoteID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != quote.CustomerID {
		return nil, domain.ErrPermissionDenied
	}
	proposal, err := quoteUc.quoteRepo.GetProposalByID(input.ProposalID)
	if err != nil {
		return nil, err
	}
	if proposal.QuoteID != quote.ID {
		return nil, fmt.Errorf("%w: proposal does not belong to quote", domain.ErrValidation)
	}
	if _, err := quoteUc.orderRepo.GetOrderByQuoteID(quote.ID); err == nil {
		return nil, domain.ErrConcurrentAcceptance
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	order := domain.Order{
		ID:          idGenerator(),
		QuoteID:     quote.ID,
		ProposalID:  proposal.ID,
		CustomerID:  quote.CustomerID,
		ProviderID:  proposal.ProviderID,
		GrossAmount: proposal.TotalAmount,
		HourlyRate:  proposal.HourlyRate,
		Currency:    proposal.Currency,
		Status:      domain.OrderPendingPayment,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := quoteUc.quoteRepo.AcceptProposal(quote.ID, proposal.ID, &order); err != nil {
		return nil, err
	}

	quoteUc.metrics.ProposalsAcceptedTotal.WithLabelValues(quote.Category, order.Currency).Inc()
	go func(event publisher.OrderEvent) {
		if err := quoteUc.events.PublishOrderEvent(event); err != nil {
			slog.Error("failed to publish kafka order event", "stage", "proposal accepted", "error", err.Error())
		}
	}(publisher.OrderEvent{
		Event:      publisher.EventProposalAccepted,
		OrderID:    order.ID,
		QuoteID:    quote.ID,
		CustomerID: order.CustomerID,
		ProviderID: order.ProviderID,
		Status:     string(order.Status),
		Amount:     order.GrossAmount,
		Currency:   order.Currency,
	})

	quote.Status = domain.QuoteProposalAccepted
	proposal.Status = domain.ProposalAccepted
	return &quotedto.AcceptProposalOutput{
		Quote:    quote,
		Proposal: proposal,
		Order:    &order,
	}, nil
}
