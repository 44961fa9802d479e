package handlers

import (
	"errors"
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/gin-gonic/gin"
)

// actorID reads the authenticated caller id the edge proxy injects.
func actorID(c *gin.Context) string {
	return c.GetHeader("X-Actor-ID")
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConcurrentAcceptance),
		errors.Is(err, domain.ErrApprovalResolved),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrQuoteClosed),
		errors.Is(err, domain.ErrEntryNotLoggable):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrNoBillableEntries),
		errors.Is(err, domain.ErrInsufficientEscrowBalance):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCaptureFailed),
		errors.Is(err, domain.ErrPayoutFailed):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}
