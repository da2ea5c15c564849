package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/temboplus/afloat-go/api"
	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/middleware"
	"github.com/temboplus/afloat-go/models"
)

// PayoutCommander defines the write-side operations used by PayoutHandler.
type PayoutCommander interface {
	CreatePayout(ctx context.Context, profileID string, actor models.Actor, req api.PayoutRequest) (models.Payout, error)
	ApprovePayout(ctx context.Context, profileID, id string, actor models.Actor, notes *string) (models.Payout, error)
	RejectPayout(ctx context.Context, profileID, id string, actor models.Actor, notes *string) (models.Payout, error)
}

// PayoutQuerier defines the read-side operations used by PayoutHandler.
type PayoutQuerier interface {
	GetPayout(profileID, id string) (models.Payout, error)
	ListPayouts(profileID string, f repository.PayoutFilter) api.PayoutPage
}

type PayoutHandler struct {
	commands PayoutCommander
	queries  PayoutQuerier
	members  Members
}

func NewPayoutHandler(commands PayoutCommander, queries PayoutQuerier, members Members) *PayoutHandler {
	return &PayoutHandler{commands: commands, queries: queries, members: members}
}

func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	filter := repository.PayoutFilter{Approval: models.ApprovalStatus(c.Query("approvalStatus"))}
	switch filter.Approval {
	case "", models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		middleware.RespondWithError(c, http.StatusBadRequest, "approvalStatus must be one of Pending, Approved, Rejected")
		return
	}
	var ok bool
	if filter.Page, ok = queryInt(c, "page"); !ok {
		return
	}
	if filter.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}
	c.JSON(http.StatusOK, h.queries.ListPayouts(profileID(c), filter))
}

func (h *PayoutHandler) GetPayout(c *gin.Context) {
	payout, err := h.queries.GetPayout(profileID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Payout", "Failed to get payout")
		return
	}
	c.JSON(http.StatusOK, payout)
}

func (h *PayoutHandler) CreatePayout(c *gin.Context) {
	var req api.PayoutRequest
	if !bindJSON(c, &req) {
		return
	}
	payout, err := h.commands.CreatePayout(c.Request.Context(), profileID(c), actor(h.members, c), req)
	if err != nil {
		respondError(c, err, "Payout", "Failed to create payout")
		return
	}
	c.JSON(http.StatusCreated, payout)
}

func (h *PayoutHandler) ApprovePayout(c *gin.Context) {
	h.decide(c, h.commands.ApprovePayout, "Failed to approve payout")
}

func (h *PayoutHandler) RejectPayout(c *gin.Context) {
	h.decide(c, h.commands.RejectPayout, "Failed to reject payout")
}

type decision func(ctx context.Context, profileID, id string, actor models.Actor, notes *string) (models.Payout, error)

func (h *PayoutHandler) decide(c *gin.Context, fn decision, fallback string) {
	var req api.DecisionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	payout, err := fn(c.Request.Context(), profileID(c), c.Param("id"), actor(h.members, c), req.Notes)
	if err != nil {
		respondError(c, err, "Payout", fallback)
		return
	}
	c.JSON(http.StatusCreated, payout)
}

// queryInt reads a non-negative integer query parameter; absent is zero.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
