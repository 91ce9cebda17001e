package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const getPayoutByPeriodSQL = `
SELECT id, tenant_id, professional_id, period_start, period_end, amount_cents, line_count, created_at
FROM payouts
WHERE professional_id = $1 AND period_start = $2 AND period_end = $3`

type PayoutReadStore struct {
	db db.DBTX
}

func NewPayoutReadStore(dbtx db.DBTX) *PayoutReadStore {
	return &PayoutReadStore{db: dbtx}
}

func (r *PayoutReadStore) FindByPeriod(ctx context.Context, professionalID uuid.UUID, period schedule.Interval) (*commission.Payout, error) {
	var (
		p          commission.Payout
		start, end time.Time
		lineCount  int32
	)
	err := r.db.QueryRow(ctx, getPayoutByPeriodSQL, professionalID, period.Start(), period.End()).Scan(
		&p.ID, &p.TenantID, &p.ProfessionalID, &start, &end, &p.AmountCents, &lineCount, &p.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payout", err)
	}
	iv, err := schedule.NewInterval(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt payout period", err)
	}
	p.Period = iv
	p.LineCount = int(lineCount)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
