package readstore

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const getIdempotencyKeySQL = `
SELECT tenant_id, key, request_hash, booking_id, expires_at, created_at
FROM idempotency_keys
WHERE tenant_id = $1 AND key = $2`

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, tenantID uuid.UUID, key string) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, getIdempotencyKeySQL, tenantID, key).Scan(
		&rec.TenantID, &rec.Key, &rec.RequestHash, &rec.BookingID, &rec.ExpiresAt, &rec.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}
