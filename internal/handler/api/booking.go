package api

import (
	"context"
	"net/http"

	"salon-scheduler/internal/domain/booking"
	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: bookingCommands,
		queries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Create a booking for one professional. Replays the original booking when the Idempotency-Key was already used with the same request.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /tenants/{tenantId}/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}
	h.create(c, tenantID)
}

func (h *BookingHandler) create(c *gin.Context, tenantID uuid.UUID) {
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.commands.Create(c.Request.Context(), req.ToInput(tenantID, key))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBooking(result.Booking))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := h.queries.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary List bookings
// @Description Keyset-paginated bookings of a tenant whose start falls in [from, to).
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param from query string true "RFC3339 window start"
// @Param to query string true "RFC3339 window end"
// @Param professional_id query string false "Professional ID"
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /tenants/{tenantId}/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	tenantID, ok := uuidParam(c, "tenantId")
	if !ok {
		return
	}

	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	proID, ok := optionalUUID(c, q.ProfessionalID, "professional_id")
	if !ok {
		return
	}
	statuses := make([]booking.Status, 0, len(q.Status))
	for _, s := range q.Status {
		st, err := booking.ParseStatus(s)
		if err != nil {
			respondError(c, err)
			return
		}
		statuses = append(statuses, st)
	}

	page, err := h.queries.ListBookings(c.Request.Context(), queries.ListBookingsInput{
		TenantID:       tenantID,
		ProfessionalID: proID,
		From:           q.From,
		To:             q.To,
		Statuses:       statuses,
		After:          q.After,
		Limit:          q.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookings(page.Items, page.NextCursor))
}

// @Summary Cancel booking
// @Description Cancels the booking and releases its slot.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.commands.Cancel)
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.commands.Confirm)
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.commands.Complete)
}

// @Summary Mark booking as no-show
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.commands.MarkNoShow)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Reschedule booking
// @Description Moves the booking to a new interval. Omitting end keeps the service duration.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New interval"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.commands.Reschedule(c.Request.Context(), id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Delete booking
// @Description Permanently removes a booking and everything it owns. Admin only.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.commands.HardDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
