package usecase

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
)

type QuoteUsecase interface {
	CreateQuote(input *quotedto.CreateQuoteInput) (*domain.Quote, error)
	SubmitProposal(input *quotedto.SubmitProposalInput) (*domain.Proposal, error)
	AcceptProposal(input *quotedto.AcceptProposalInput) (*quotedto.AcceptProposalOutput, error)
	WithdrawProposal(input *quotedto.WithdrawProposalInput) error
	CancelQuote(input *quotedto.CancelQuoteInput) error
	GetQuote(quoteID string) (*quotedto.QuoteOutput, error)
}

// OrderEventPublisher is the slice of the kafka publisher this usecase needs.
type OrderEventPublisher interface {
	PublishOrderEvent(event publisher.OrderEvent) error
}

type DefaultQuoteUsecase struct {
	quoteRepo domain.QuoteRepository
	orderRepo domain.OrderRepository
	events    OrderEventPublisher
	metrics   *metrics.EngineMetrics
}

func NewDefaultQuoteUsecase(
	quoteRepo domain.QuoteRepository,
	orderRepo domain.OrderRepository,
	events OrderEventPublisher,
	engineMetrics *metrics.EngineMetrics,
) *DefaultQuoteUsecase {
	return &DefaultQuoteUsecase{
		quoteRepo: quoteRepo,
		orderRepo: orderRepo,
		events:    events,
		metrics:   engineMetrics,
	}
}
