package api

import (
	"salon-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 128

var errInvalidIdempotencyKey = errs.Sentinel(errs.ErrValidation, "idempotency key too long")

// uuidParam parses a path parameter and answers 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, errs.Wrap(errInvalidID, name), "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUID(c *gin.Context, raw, name string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, errs.Wrap(errInvalidID, name), "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

func idempotencyKey(c *gin.Context) (string, bool) {
	key := c.GetHeader("Idempotency-Key")
	if len(key) > maxIdempotencyKeyLength {
		badRequest(c, errInvalidIdempotencyKey, errInvalidIdempotencyKey.Error())
		return "", false
	}
	return key, true
}

func bindError(c *gin.Context, err error) {
	badRequest(c, errs.Classify(err, errs.ErrValidation), "Invalid request format")
}
