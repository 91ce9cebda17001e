package api

import (
	"net/http"
	"time"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	blocks   commands.BlockedTimeCommands
	schedule queries.ScheduleQueries
}

func NewScheduleHandler(blocks commands.BlockedTimeCommands, schedule queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{blocks: blocks, schedule: schedule}
}

// @Summary Get blocked times
// @Description Active blocked intervals of a professional overlapping [from, to).
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param from query string true "RFC3339 window start"
// @Param to query string true "RFC3339 window end"
// @Success 200 {array} resdto.BlockedTimeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /professionals/{id}/blocked-times [get]
func (h *ScheduleHandler) GetBlockedTimes(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	blocks, err := h.schedule.GetBlockedTimes(c.Request.Context(), proID, q.From, q.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBlockedTimes(blocks))
}

// @Summary Block time
// @Description Blocks a manual interval for a professional, such as a break or day off.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param request body reqdto.BlockTimeRequest true "Interval to block"
// @Success 201 {object} resdto.BlockedTimeResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /professionals/{id}/blocked-times [post]
func (h *ScheduleHandler) BlockTime(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	bt, err := h.blocks.BlockTime(c.Request.Context(), req.ToInput(proID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBlockedTime(*bt))
}

// @Summary Unblock time
// @Description Releases a manual blocked interval. Booking blocks are released by cancelling the booking.
// @Tags schedule
// @Security BearerAuth
// @Param id path string true "Blocked time ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /blocked-times/{id} [delete]
func (h *ScheduleHandler) UnblockTime(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.blocks.UnblockTime(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check conflicts
// @Description Reports whether a candidate interval is free and inside opening hours. Nothing is written.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Param exclude_booking_id query string false "Booking to ignore, for reschedule previews"
// @Success 200 {object} resdto.ConflictCheckResponse
// @Failure 400 {object} httperr.Response
// @Router /professionals/{id}/conflicts [get]
func (h *ScheduleHandler) CheckConflict(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.ConflictQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	exclude, ok := optionalUUID(c, q.ExcludeBookingID, "exclude_booking_id")
	if !ok {
		return
	}

	check, err := h.schedule.CheckConflict(c.Request.Context(), proID, q.Start, q.End, exclude)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConflictCheck(check))
}

// @Summary Next available slot
// @Description Earliest free interval of the given length inside opening hours.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param duration query int true "Length in minutes"
// @Param from query string false "RFC3339 search start, defaults to now"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /professionals/{id}/next-available [get]
func (h *ScheduleHandler) NextAvailable(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.NextAvailableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	slot, err := h.schedule.NextAvailable(c.Request.Context(), proID, time.Duration(q.DurationMinutes)*time.Minute, q.From)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlot(slot))
}
