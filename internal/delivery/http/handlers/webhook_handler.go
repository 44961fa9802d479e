package handlers

import (
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/request"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	escrowuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/escrow"
	payoutuc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/payout"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives asynchronous processor notifications and routes
// them by kind. A 2xx acknowledges the delivery; the processor redelivers on
// anything else, so transient failures answer 500 and get retried.
type WebhookHandler struct {
	escrowUsecase escrowuc.EscrowUsecase
	payoutUsecase payoutuc.PayoutUsecase
}

func NewWebhookHandler(escrowUsecase escrowuc.EscrowUsecase, payoutUsecase payoutuc.PayoutUsecase) *WebhookHandler {
	return &WebhookHandler{
		escrowUsecase: escrowUsecase,
		payoutUsecase: payoutUsecase,
	}
}

func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	var req request.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	event := domain.PaymentEvent{
		Reference: req.Reference,
		Kind:      domain.PaymentEventKind(req.Kind),
		Amount:    req.Amount,
		Currency:  req.Currency,
	}

	var err error
	switch event.Kind {
	case domain.PaymentEventCaptureSucceeded, domain.PaymentEventCaptureFailed:
		err = h.escrowUsecase.ApplyCaptureEvent(&event)
	case domain.PaymentEventTransferSucceeded, domain.PaymentEventTransferFailed:
		err = h.payoutUsecase.ApplyTransferEvent(&event)
	default:
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "unknown event kind"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
