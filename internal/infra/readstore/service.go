package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listServicesByIDsSQL = `
SELECT id, tenant_id, name, duration_seconds, price_cents, rate_bps, active
FROM services
WHERE id = ANY($1)`

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

// FindByIDs skips unknown ids; callers compare what came back.
func (r *ServiceReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Service, error) {
	rows, err := r.db.Query(ctx, listServicesByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*catalog.Service, error) {
		var (
			id, tenantID uuid.UUID
			name         string
			seconds      int32
			price        int64
			rateBps      pgtype.Int4
			active       bool
		)
		if err := row.Scan(&id, &tenantID, &name, &seconds, &price, &rateBps, &active); err != nil {
			return nil, err
		}
		rate, err := converter.RateFromPgtype(rateBps)
		if err != nil {
			return nil, err
		}
		return catalog.ReconstructService(id, tenantID, name, time.Duration(seconds)*time.Second, price, rate, active), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan services", err)
	}
	return out, nil
}
