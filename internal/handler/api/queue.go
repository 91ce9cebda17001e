package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	queue queries.QueueQueries
}

func NewQueueHandler(queue queries.QueueQueries) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// @Summary Get queue status
// @Description Today's waiting line of a professional, in the tenant's time zone.
// @Tags queue
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param as_of query string false "RFC3339 reference instant, defaults to now"
// @Success 200 {object} resdto.QueueStatusResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /professionals/{id}/queue [get]
func (h *QueueHandler) GetQueueStatus(c *gin.Context) {
	proID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.QueueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	status, err := h.queue.GetQueueStatus(c.Request.Context(), proID, q.AsOf)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	c.JSON(http.StatusOK, resdto.FromQueueStatus(status, actor.IsPublic()))
}
