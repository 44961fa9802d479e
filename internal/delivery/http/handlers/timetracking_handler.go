package handlers

import (
	"net/http"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/request"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/delivery/http/dto/response"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
	timetrackinguc "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/timetracking"
	"github.com/gin-gonic/gin"
)

type TimeTrackingHandler struct {
	usecase timetrackinguc.TimeTrackingUsecase
}

func NewTimeTrackingHandler(usecase timetrackinguc.TimeTrackingUsecase) *TimeTrackingHandler {
	return &TimeTrackingHandler{usecase: usecase}
}

func (h *TimeTrackingHandler) LogTime(c *gin.Context) {
	var req request.LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.usecase.LogTime(&timetrackingdto.LogTimeInput{
		OrderID:     c.Param("id"),
		ActorID:     actorID(c),
		Date:        req.Date,
		Hours:       req.Hours,
		Category:    domain.TimeEntryCategory(req.Category),
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromTimeEntry(entry))
}

func (h *TimeTrackingHandler) GetTimeEntries(c *gin.Context) {
	entries, err := h.usecase.GetTimeEntries(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]response.TimeEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = response.FromTimeEntry(entry)
	}
	c.JSON(http.StatusOK, out)
}

func (h *TimeTrackingHandler) SubmitForApproval(c *gin.Context) {
	var req request.SubmitForApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	approvalRequest, err := h.usecase.SubmitForApproval(&timetrackingdto.SubmitForApprovalInput{
		OrderID:         c.Param("id"),
		ActorID:         actorID(c),
		TimeEntryIDs:    req.TimeEntryIDs,
		ProviderMessage: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromApprovalRequest(approvalRequest))
}

func (h *TimeTrackingHandler) GetApprovalRequests(c *gin.Context) {
	requests, err := h.usecase.GetApprovalRequests(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]response.ApprovalRequestResponse, len(requests))
	for i, approvalRequest := range requests {
		out[i] = response.FromApprovalRequest(approvalRequest)
	}
	c.JSON(http.StatusOK, out)
}

func (h *TimeTrackingHandler) ResolveApproval(c *gin.Context) {
	var req request.ResolveApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	resolved, err := h.usecase.ResolveApproval(&timetrackingdto.ResolveApprovalInput{
		ApprovalRequestID: c.Param("id"),
		ActorID:           actorID(c),
		Decision:          domain.ApprovalDecision(req.Decision),
		ApprovedEntryIDs:  req.ApprovedEntryIDs,
		CustomerFeedback:  req.Feedback,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromApprovalRequest(resolved))
}

func (h *TimeTrackingHandler) CompleteProvider(c *gin.Context) {
	err := h.usecase.CompleteProvider(&timetrackingdto.CompleteOrderInput{
		OrderID: c.Param("id"),
		ActorID: actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TimeTrackingHandler) CompleteCustomer(c *gin.Context) {
	err := h.usecase.CompleteCustomer(&timetrackingdto.CompleteOrderInput{
		OrderID: c.Param("id"),
		ActorID: actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TimeTrackingHandler) GetTimeSummary(c *gin.Context) {
	summary, err := h.usecase.GetTimeSummary(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.TimeSummaryResponse{
		OrderID:            summary.OrderID,
		TotalLoggedHours:   summary.TotalLoggedHours,
		TotalApprovedHours: summary.TotalApprovedHours,
		TotalBilledHours:   summary.TotalBilledHours,
		TotalPaidOutHours:  summary.TotalPaidOutHours,
		TotalBilledAmount:  summary.TotalBilledAmount,
	})
}
