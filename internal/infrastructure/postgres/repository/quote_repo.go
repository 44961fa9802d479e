package repository

import (
	"errors"
	"fmt"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/mappers"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultQuoteRepository struct {
	DB *gorm.DB
}

func NewDefaultQuoteRepository(db *gorm.DB) *DefaultQuoteRepository {
	return &DefaultQuoteRepository{DB: db}
}

func (r *DefaultQuoteRepository) CreateQuote(quote *domain.Quote) error {
	return r.DB.Create(mappers.ToGORMQuote(quote)).Error
}

func (r *DefaultQuoteRepository) GetQuoteByID(quoteID string) (*domain.Quote, error) {
	var model models.QuoteModel
	if err := r.DB.First(&model, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainQuote(&model), nil
}

func (r *DefaultQuoteRepository) UpdateQuoteStatus(quoteID string, oldStatus, newStatus domain.QuoteStatus) error {
	res := r.DB.Model(&models.QuoteModel{}).
		Where("id = ? AND status = ?", quoteID, oldStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *DefaultQuoteRepository) CreateProposal(proposal *domain.Proposal) error {
	return r.DB.Create(mappers.ToGORMProposal(proposal)).Error
}

func (r *DefaultQuoteRepository) GetProposalByID(proposalID string) (*domain.Proposal, error) {
	var model models.ProposalModel
	if err := r.DB.First(&model, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProposal(&model), nil
}

func (r *DefaultQuoteRepository) GetProposalsByQuoteID(quoteID string) ([]*domain.Proposal, error) {
	var proposalModels []models.ProposalModel
	if err := r.DB.Where("quote_id = ?", quoteID).Order("created_at ASC").Find(&proposalModels).Error; err != nil {
		return nil, err
	}

	proposals := make([]*domain.Proposal, len(proposalModels))
	for i, model := range proposalModels {
		proposals[i] = mappers.ToDomainProposal(&model)
	}
	return proposals, nil
}

func (r *DefaultQuoteRepository) UpdateProposalStatus(proposalID string, oldStatus, newStatus domain.ProposalStatus) error {
	res := r.DB.Model(&models.ProposalModel{}).
		Where("id = ? AND status = ?", proposalID, oldStatus).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

// AcceptProposal flips the whole aggregate in one transaction. The quote row
// is locked first; a quote that already left OPEN means another acceptance
// won, and the loser fails with ErrConcurrentAcceptance instead of retrying.
// Only one order may ever exist per quote.
func (r *DefaultQuoteRepository) AcceptProposal(quoteID, proposalID string, order *domain.Order) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quote models.QuoteModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&quote, "id = ?", quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if quote.Status != domain.QuoteOpen {
			return domain.ErrConcurrentAcceptance
		}

		var proposal models.ProposalModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&proposal, "id = ? AND quote_id = ?", proposalID, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if proposal.Status != domain.ProposalSubmitted {
			return domain.ErrInvalidStateTransition
		}

		if err := tx.Model(&models.ProposalModel{}).
			Where("id = ?", proposalID).
			Update("status", domain.ProposalAccepted).Error; err != nil {
			return fmt.Errorf("accept proposal: %w", err)
		}

		if err := tx.Model(&models.ProposalModel{}).
			Where("quote_id = ? AND id <> ? AND status = ?", quoteID, proposalID, domain.ProposalSubmitted).
			Update("status", domain.ProposalDeclined).Error; err != nil {
			return fmt.Errorf("decline sibling proposals: %w", err)
		}

		if err := tx.Model(&models.QuoteModel{}).
			Where("id = ?", quoteID).
			Update("status", domain.QuoteProposalAccepted).Error; err != nil {
			return fmt.Errorf("close quote: %w", err)
		}

		if err := tx.Create(mappers.ToGORMOrder(order)).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return nil
	})
}
