package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"
)

// An expired row for the same key is replaced in place.
const upsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (tenant_id, key, request_hash, booking_id, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (tenant_id, key) DO UPDATE
SET request_hash = EXCLUDED.request_hash,
    booking_id   = EXCLUDED.booking_id,
    expires_at   = EXCLUDED.expires_at,
    created_at   = EXCLUDED.created_at
WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) Insert(ctx context.Context, rec shared.IdempotencyRecord) error {
	tag, err := r.db.Exec(ctx, upsertIdempotencyKeySQL,
		rec.TenantID, rec.Key, rec.RequestHash, rec.BookingID, rec.ExpiresAt, rec.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrIdempotencyKeyReuse
	}
	return nil
}
