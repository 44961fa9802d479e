package usecase

import (
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
)

func (quoteUc *DefaultQuoteUsecase) GetQuote(quoteID string) (*quotedto.QuoteOutput, error) {
	quote, err := quoteUc.quoteRepo.GetQuoteByID(quoteID)
	if err != nil {
		return nil, err
	}
	proposals, err := quoteUc.quoteRepo.GetProposalsByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	return &quotedto.QuoteOutput{
		Quote:     quote,
		Proposals: proposals,
	}, nil
}
