package shared

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	TenantID    uuid.UUID
	Key         string
	RequestHash string
	BookingID   uuid.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
