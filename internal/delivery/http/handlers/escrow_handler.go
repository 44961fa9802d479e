package handlers

import (
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/request"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	escrowdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/escrow"
	escrowuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/escrow"
	"github.com/gin-gonic/gin"
)

type EscrowHandler struct {
	usecase escrowuc.EscrowUsecase
}

func NewEscrowHandler(usecase escrowuc.EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{usecase: usecase}
}

func (h *EscrowHandler) CaptureFunds(c *gin.Context) {
	var req request.CaptureFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.usecase.CaptureFunds(c.Request.Context(), &escrowdto.CaptureFundsInput{
		OrderID:  c.Param("id"),
		ActorID:  actorID(c),
		Currency: req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response.FromEscrow(record))
}

func (h *EscrowHandler) CaptureAdditional(c *gin.Context) {
	var req request.CaptureAdditionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.usecase.CaptureAdditional(c.Request.Context(), &escrowdto.CaptureAdditionalInput{
		OrderID: c.Param("id"),
		ActorID: actorID(c),
		Amount:  req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response.FromEscrow(record))
}

func (h *EscrowHandler) Refund(c *gin.Context) {
	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.usecase.Refund(&escrowdto.RefundInput{
		OrderID: c.Param("id"),
		ActorID: actorID(c),
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	record, err := h.usecase.GetEscrowByOrderID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEscrow(record))
}
