package http

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every engine route. Authentication happens at the edge
// proxy; the engine trusts the X-Actor-ID header it injects.
func NewRouter(
	quoteHandler *handlers.QuoteHandler,
	escrowHandler *handlers.EscrowHandler,
	timeTrackingHandler *handlers.TimeTrackingHandler,
	payoutHandler *handlers.PayoutHandler,
	webhookHandler *handlers.WebhookHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	quotes := router.Group("/quotes")
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/proposals", quoteHandler.SubmitProposal)
		quotes.POST("/:id/accept", quoteHandler.AcceptProposal)
		quotes.POST("/:id/cancel", quoteHandler.CancelQuote)
	}

	router.POST("/proposals/:id/withdraw", quoteHandler.WithdrawProposal)

	orders := router.Group("/orders")
	{
		orders.POST("/:id/capture", escrowHandler.CaptureFunds)
		orders.POST("/:id/capture-additional", escrowHandler.CaptureAdditional)
		orders.POST("/:id/refund", escrowHandler.Refund)
		orders.GET("/:id/escrow", escrowHandler.GetEscrow)

		orders.POST("/:id/time-entries", timeTrackingHandler.LogTime)
		orders.GET("/:id/time-entries", timeTrackingHandler.GetTimeEntries)
		orders.POST("/:id/approval-requests", timeTrackingHandler.SubmitForApproval)
		orders.GET("/:id/approval-requests", timeTrackingHandler.GetApprovalRequests)
		orders.GET("/:id/time-summary", timeTrackingHandler.GetTimeSummary)
		orders.POST("/:id/complete/provider", timeTrackingHandler.CompleteProvider)
		orders.POST("/:id/complete/customer", timeTrackingHandler.CompleteCustomer)

		orders.POST("/:id/payouts", payoutHandler.ExecutePayout)
		orders.GET("/:id/payouts", payoutHandler.GetPayouts)
	}

	router.POST("/approval-requests/:id/resolve", timeTrackingHandler.ResolveApproval)
	router.POST("/webhooks/payment", webhookHandler.HandlePaymentEvent)

	return router
}
