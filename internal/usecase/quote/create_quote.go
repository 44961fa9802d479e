package usecase

import (
	"fmt"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
	"github.com/jaevor/go-nanoid"
)

func (quoteUc *DefaultQuoteUsecase) CreateQuote(input *quotedto.CreateQuoteInput) (*domain.Quote, error) {
	if input.CustomerID == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: customer id and description are required", domain.ErrValidation)
	}
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	quote := domain.Quote{
		ID:          idGenerator(),
		CustomerID:  input.CustomerID,
		Description: input.Description,
		Category:    input.Category,
		Status:      domain.QuoteOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := quoteUc.quoteRepo.CreateQuote(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
