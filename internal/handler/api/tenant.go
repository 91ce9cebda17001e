package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	tenants commands.TenantCommands
}

func NewTenantHandler(tenants commands.TenantCommands) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// @Summary Update tenant settings
// @Description Partially updates name, opening hours, default commission rate, monthly goal or activation.
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param request body reqdto.UpdateTenantSettingsRequest true "Settings"
// @Success 200 {object} resdto.TenantResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/settings [patch]
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}
	var req reqdto.UpdateTenantSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	settings, err := req.ToSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	t, err := h.tenants.UpdateSettings(c.Request.Context(), tenantID, settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTenant(t))
}

// @Summary Issue booking link
// @Description Rotates the public booking token. The previous link stops working.
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Success 201 {object} resdto.BookingLinkResponse
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/booking-link [post]
func (h *TenantHandler) IssueBookingLink(c *gin.Context) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}

	token, err := h.tenants.IssueBookingLink(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingLink(token))
}
