package handlers

import (
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/request"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
	quoteuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/quote"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	usecase quoteuc.QuoteUsecase
}

func NewQuoteHandler(usecase quoteuc.QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{usecase: usecase}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	quote, err := h.usecase.CreateQuote(&quotedto.CreateQuoteInput{
		CustomerID:  actorID(c),
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	output, err := h.usecase.GetQuote(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	proposals := make([]response.ProposalResponse, len(output.Proposals))
	for i, proposal := range output.Proposals {
		proposals[i] = response.FromProposal(proposal)
	}
	c.JSON(http.StatusOK, gin.H{
		"quote":     response.FromQuote(output.Quote),
		"proposals": proposals,
	})
}

func (h *QuoteHandler) SubmitProposal(c *gin.Context) {
	var req request.SubmitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	proposal, err := h.usecase.SubmitProposal(&quotedto.SubmitProposalInput{
		QuoteID:     c.Param("id"),
		ProviderID:  actorID(c),
		TotalAmount: req.TotalAmount,
		HourlyRate:  req.HourlyRate,
		Currency:    req.Currency,
		Message:     req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProposal(proposal))
}

func (h *QuoteHandler) AcceptProposal(c *gin.Context) {
	var req request.AcceptProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.usecase.AcceptProposal(&quotedto.AcceptProposalInput{
		QuoteID:    c.Param("id"),
		ProposalID: req.ProposalID,
		ActorID:    actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quote":    response.FromQuote(output.Quote),
		"proposal": response.FromProposal(output.Proposal),
		"order":    response.FromOrder(output.Order),
	})
}

func (h *QuoteHandler) CancelQuote(c *gin.Context) {
	err := h.usecase.CancelQuote(&quotedto.CancelQuoteInput{
		QuoteID: c.Param("id"),
		ActorID: actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) WithdrawProposal(c *gin.Context) {
	err := h.usecase.WithdrawProposal(&quotedto.WithdrawProposalInput{
		ProposalID: c.Param("id"),
		ActorID:    actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
