package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	commissions queries.CommissionQueries
	payouts     commands.PayoutCommands
}

func NewCommissionHandler(commissions queries.CommissionQueries, payouts commands.PayoutCommands) *CommissionHandler {
	return &CommissionHandler{commissions: commissions, payouts: payouts}
}

// @Summary Calculate commissions
// @Description Per-service commission lines of a professional for completed bookings in [from, to).
// @Tags commissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param from query string true "RFC3339 period start"
// @Param to query string true "RFC3339 period end"
// @Success 200 {object} resdto.CommissionStatementResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /professionals/{id}/commissions [get]
func (h *CommissionHandler) Calculate(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	st, err := h.commissions.Calculate(c.Request.Context(), proID, q.From, q.To)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromStatement(st)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Commission overview
// @Description Statements of every active professional of a tenant, with the payout already recorded for the period.
// @Tags commissions
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param from query string true "RFC3339 period start"
// @Param to query string true "RFC3339 period end"
// @Success 200 {array} resdto.CommissionSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/commissions [get]
func (h *CommissionHandler) Overview(c *gin.Context) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}
	var q reqdto.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	summaries, err := h.commissions.Overview(c.Request.Context(), tenantID, q.From, q.To)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromCommissionOverview(summaries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Record payout
// @Description Records the commission payout of a professional for a period. Repeating the call for the same period returns the existing payout.
// @Tags commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param request body reqdto.RecordPayoutRequest true "Payout period"
// @Success 201 {object} resdto.PayoutResponse
// @Success 200 {object} resdto.PayoutResponse "Already recorded"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /professionals/{id}/payouts [post]
func (h *CommissionHandler) RecordPayout(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.RecordPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.payouts.RecordPayout(c.Request.Context(), req.ToInput(proID))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resdto.FromPayoutResult(result))
}
