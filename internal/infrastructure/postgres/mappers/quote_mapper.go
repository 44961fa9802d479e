package mappers

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
)

func ToDomainQuote(model *models.QuoteModel) *domain.Quote {
	return &domain.Quote{
		ID:          model.ID,
		CustomerID:  model.CustomerID,
		Description: model.Description,
		Category:    model.Category,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMQuote(quote *domain.Quote) *models.QuoteModel {
	return &models.QuoteModel{
		ID:          quote.ID,
		CustomerID:  quote.CustomerID,
		Description: quote.Description,
		Category:    quote.Category,
		Status:      quote.Status,
		CreatedAt:   quote.CreatedAt,
		UpdatedAt:   quote.UpdatedAt,
	}
}

func ToDomainProposal(model *models.ProposalModel) *domain.Proposal {
	return &domain.Proposal{
		ID:          model.ID,
		QuoteID:     model.QuoteID,
		ProviderID:  model.ProviderID,
		TotalAmount: model.TotalAmount,
		HourlyRate:  model.HourlyRate,
		Currency:    model.Currency,
		Message:     model.Message,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMProposal(proposal *domain.Proposal) *models.ProposalModel {
	return &models.ProposalModel{
		ID:          proposal.ID,
		QuoteID:     proposal.QuoteID,
		ProviderID:  proposal.ProviderID,
		TotalAmount: proposal.TotalAmount,
		HourlyRate:  proposal.HourlyRate,
		Currency:    proposal.Currency,
		Message:     proposal.Message,
		Status:      proposal.Status,
		CreatedAt:   proposal.CreatedAt,
		UpdatedAt:   proposal.UpdatedAt,
	}
}
