package handlers

import (
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	payoutdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/payout"
	payoutuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/payout"
	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	usecase payoutuc.PayoutUsecase
}

func NewPayoutHandler(usecase payoutuc.PayoutUsecase) *PayoutHandler {
	return &PayoutHandler{usecase: usecase}
}

func (h *PayoutHandler) ExecutePayout(c *gin.Context) {
	payout, err := h.usecase.ExecutePayout(c.Request.Context(), &payoutdto.ExecutePayoutInput{
		OrderID: c.Param("id"),
		ActorID: actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, response.FromPayout(payout))
}

func (h *PayoutHandler) GetPayouts(c *gin.Context) {
	payouts, err := h.usecase.GetPayoutsByOrderID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]response.PayoutResponse, len(payouts))
	for i, payout := range payouts {
		out[i] = response.FromPayout(payout)
	}
	c.JSON(http.StatusOK, out)
}
