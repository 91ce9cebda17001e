package readstore

import (
	"context"

	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getProfessionalByIDSQL = `
SELECT id, tenant_id, name, active, rate_bps FROM professionals WHERE id = $1`

	listActiveProfessionalsSQL = `
SELECT id, tenant_id, name, active, rate_bps FROM professionals
WHERE tenant_id = $1 AND active
ORDER BY name, id`

	// Row lock serializing every calendar write of one professional.
	lockProfessionalSQL = `SELECT id FROM professionals WHERE id = $1 FOR UPDATE`
)

type ProfessionalReadStore struct {
	db db.DBTX
}

func NewProfessionalReadStore(dbtx db.DBTX) *ProfessionalReadStore {
	return &ProfessionalReadStore{db: dbtx}
}

func (r *ProfessionalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*professional.Professional, error) {
	p, err := scanProfessional(r.db.QueryRow(ctx, getProfessionalByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("professional not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find professional by ID", err)
	}
	return p, nil
}

func (r *ProfessionalReadStore) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*professional.Professional, error) {
	rows, err := r.db.Query(ctx, listActiveProfessionalsSQL, tenantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list professionals", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*professional.Professional, error) {
		return scanProfessional(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan professionals", err)
	}
	return out, nil
}

// Lock must run inside a transaction; the lock lives until it ends.
func (r *ProfessionalReadStore) Lock(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	if err := r.db.QueryRow(ctx, lockProfessionalSQL, id).Scan(&locked); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("professional not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock professional", err)
	}
	return nil
}

func scanProfessional(row pgx.Row) (*professional.Professional, error) {
	var (
		id, tenantID uuid.UUID
		name         string
		active       bool
		rateBps      pgtype.Int4
	)
	if err := row.Scan(&id, &tenantID, &name, &active, &rateBps); err != nil {
		return nil, err
	}
	rate, err := converter.RateFromPgtype(rateBps)
	if err != nil {
		return nil, err
	}
	return professional.ReconstructProfessional(id, tenantID, name, active, rate), nil
}
