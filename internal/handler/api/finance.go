package api

import (
	"context"
	"net/http"

	"salon-scheduler/internal/domain/finance"
	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FinanceHandler struct {
	finance queries.FinanceQueries
}

func NewFinanceHandler(finance queries.FinanceQueries) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// @Summary Recompute finance statistics
// @Description Aggregates completed bookings of a day or month from the ledger and refreshes the cache.
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param period query string true "day or month"
// @Param date query string false "YYYY-MM-DD or YYYY-MM, defaults to the current period"
// @Success 200 {object} resdto.FinanceSnapshotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/finance/recompute [post]
func (h *FinanceHandler) Recompute(c *gin.Context) {
	h.snapshot(c, func(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, bool, error) {
		s, err := h.finance.Recompute(ctx, tenantID, kind, date)
		return s, false, err
	})
}

// @Summary Get finance snapshot
// @Description Serves the cached snapshot when it is current, otherwise recomputes it.
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param period query string true "day or month"
// @Param date query string false "YYYY-MM-DD or YYYY-MM, defaults to the current period"
// @Success 200 {object} resdto.FinanceSnapshotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/finance [get]
func (h *FinanceHandler) GetSnapshot(c *gin.Context) {
	h.snapshot(c, h.finance.GetSnapshot)
}

type snapshotFunc func(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, bool, error)

func (h *FinanceHandler) snapshot(c *gin.Context, load snapshotFunc) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}
	var q reqdto.FinanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	kind, err := finance.ParsePeriodKind(q.Period)
	if err != nil {
		respondError(c, err)
		return
	}

	s, cached, err := load(c.Request.Context(), tenantID, kind, q.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := resdto.FromFinanceSnapshot(s, cached)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
