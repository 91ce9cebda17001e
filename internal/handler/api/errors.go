package api

import (
	"errors"
	"log/slog"
	"net/http"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Seconds a client should wait after a 503 before retrying.
const retryAfterSeconds = "1"

var errInvalidID = errs.Sentinel(errs.ErrValidation, "invalid id format")

type transitionDetail struct {
	From   string `json:"from"`
	Action string `json:"action"`
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		conflict   *schedule.ConflictError
		outOfHours *schedule.OutOfHoursError
		transition *booking.TransitionError
	)

	switch {
	case errors.As(err, &conflict):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), resdto.FromConflictError(conflict))
	case errors.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Time interval conflict", nil)
	case errors.As(err, &outOfHours):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, httperr.CodeOutOfHours, err, err.Error(), resdto.FromOutOfHoursError(outOfHours))
	case errors.As(err, &transition):
		httperr.AbortWithCode(c, http.StatusConflict, httperr.CodeInvalidTransition, err, err.Error(),
			transitionDetail{From: transition.From.String(), Action: transition.Action})
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithCode(c, http.StatusConflict, httperr.CodeInvalidTransition, err, err.Error(), nil)
	case errors.Is(err, errs.ErrIdempotencyKeyReuse):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, httperr.CodeIdempotencyKeyReused, err, "Idempotency key was used with a different request", nil)
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, err.Error(), nil)
	case errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, errs.ErrUnavailable):
		c.Header("Retry-After", retryAfterSeconds)
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable, retry later", nil)
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		slog.Error("unhandled error", "path", c.Request.URL.Path, "error", err.Error(), errs.StackAttr(err, 5))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
