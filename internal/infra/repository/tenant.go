package repository

import (
	"context"

	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
)

const updateTenantSQL = `
UPDATE tenants
SET hours = $2, default_rate_bps = $3, monthly_goal_cents = $4, active = $5,
    booking_link_digest = $6, updated_at = $7
WHERE id = $1`

type TenantRepository struct {
	db db.DBTX
}

func NewTenantRepository(dbtx db.DBTX) *TenantRepository {
	return &TenantRepository{db: dbtx}
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	hours, err := converter.HoursToJSON(t.Hours())
	if err != nil {
		return infra.WrapRepoErr("failed to encode operating hours", err)
	}
	tag, err := r.db.Exec(ctx, updateTenantSQL,
		t.ID(), hours, t.DefaultRate().BasisPoints(), t.MonthlyGoalCents(), t.IsActive(),
		pgconv.OptionalText(t.BookingLinkDigest()), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update tenant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("tenant not found", nil, infra.KindNotFound)
	}
	return nil
}
