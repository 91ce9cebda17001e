package api

import (
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errNoTenant = errs.New("booking link resolved without a tenant")

// PublicHandler serves visitors of a tenant's booking link. The link
// middleware has already bound a public actor to the request.
type PublicHandler struct {
	bookings *BookingHandler
	queue    *QueueHandler
}

func NewPublicHandler(bookings *BookingHandler, queue *QueueHandler) *PublicHandler {
	return &PublicHandler{bookings: bookings, queue: queue}
}

// @Summary Create booking through a public link
// @Description Bookings created here always start as pending and carry no client account.
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Booking link token"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /public/{token}/bookings [post]
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		respondError(c, errNoTenant)
		return
	}
	h.bookings.create(c, tenantID)
}

// @Summary Public queue status
// @Description Queue of a professional without customer names.
// @Tags public
// @Produce json
// @Param token path string true "Booking link token"
// @Param id path string true "Professional ID"
// @Success 200 {object} resdto.QueueStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /public/{token}/professionals/{id}/queue [get]
func (h *PublicHandler) GetQueueStatus(c *gin.Context) {
	h.queue.GetQueueStatus(c)
}
