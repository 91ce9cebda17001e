package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const tenantColumns = `
    id, name, slug, hours, default_rate_bps, monthly_goal_cents, active, booking_link_digest, created_at, updated_at`

const (
	getTenantByIDSQL         = `SELECT` + tenantColumns + ` FROM tenants WHERE id = $1`
	getTenantByLinkDigestSQL = `SELECT` + tenantColumns + ` FROM tenants WHERE booking_link_digest = $1`
)

type TenantReadStore struct {
	db db.DBTX
}

func NewTenantReadStore(dbtx db.DBTX) *TenantReadStore {
	return &TenantReadStore{db: dbtx}
}

func (r *TenantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return r.find(ctx, getTenantByIDSQL, id)
}

func (r *TenantReadStore) FindByLinkDigest(ctx context.Context, digest string) (*tenant.Tenant, error) {
	return r.find(ctx, getTenantByLinkDigestSQL, digest)
}

func (r *TenantReadStore) find(ctx context.Context, query string, arg any) (*tenant.Tenant, error) {
	t, err := scanTenant(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("tenant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tenant", err)
	}
	return t, nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		id                   uuid.UUID
		name, slug           string
		hoursRaw             []byte
		rateBps              int32
		goal                 int64
		active               bool
		digest               pgtype.Text
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &slug, &hoursRaw, &rateBps, &goal, &active, &digest, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	hours, err := converter.HoursFromJSON(hoursRaw)
	if err != nil {
		return nil, err
	}
	rate, err := commission.NewRate(rateBps)
	if err != nil {
		return nil, err
	}
	return tenant.ReconstructTenant(id, name, slug, hours, rate, goal, active, digest.String, createdAt.UTC(), updatedAt.UTC()), nil
}
