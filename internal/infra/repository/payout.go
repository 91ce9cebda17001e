package repository

import (
	"context"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
)

const insertPayoutSQL = `
INSERT INTO payouts (id, tenant_id, professional_id, period_start, period_end, amount_cents, line_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type PayoutRepository struct {
	db db.DBTX
}

func NewPayoutRepository(dbtx db.DBTX) *PayoutRepository {
	return &PayoutRepository{db: dbtx}
}

func (r *PayoutRepository) Insert(ctx context.Context, p *commission.Payout) error {
	_, err := r.db.Exec(ctx, insertPayoutSQL,
		p.ID, p.TenantID, p.ProfessionalID, p.Period.Start(), p.Period.End(), p.AmountCents, p.LineCount, p.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert payout", err)
	}
	return nil
}
