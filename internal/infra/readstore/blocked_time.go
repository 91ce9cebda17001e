package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const blockedTimeColumns = `
    id, tenant_id, professional_id, starts_at, ends_at, kind, booking_id, reason, created_at, retired_at`

const (
	listActiveBlockedTimesSQL = `SELECT` + blockedTimeColumns + `
FROM blocked_times
WHERE tenant_id = $1 AND professional_id = $2 AND retired_at IS NULL
  AND tstzrange(starts_at, ends_at, '[)') && tstzrange($3, $4, '[)')
ORDER BY starts_at, id`

	getBlockedTimeByIDSQL = `SELECT` + blockedTimeColumns + ` FROM blocked_times WHERE id = $1`
)

type BlockedTimeReadStore struct {
	db db.DBTX
}

func NewBlockedTimeReadStore(dbtx db.DBTX) *BlockedTimeReadStore {
	return &BlockedTimeReadStore{db: dbtx}
}

// ListActive returns active rows overlapping window. A zero window means
// the whole calendar.
func (r *BlockedTimeReadStore) ListActive(ctx context.Context, tenantID, professionalID uuid.UUID, window schedule.Interval) ([]schedule.BlockedTime, error) {
	var from, to pgtype.Timestamptz
	if !window.IsZero() {
		from = pgconv.TimeToPgtype(window.Start())
		to = pgconv.TimeToPgtype(window.End())
	}
	rows, err := r.db.Query(ctx, listActiveBlockedTimesSQL, tenantID, professionalID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked times", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (schedule.BlockedTime, error) {
		return scanBlockedTime(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan blocked times", err)
	}
	return out, nil
}

func (r *BlockedTimeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*schedule.BlockedTime, error) {
	bt, err := scanBlockedTime(r.db.QueryRow(ctx, getBlockedTimeByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("blocked time not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find blocked time by ID", err)
	}
	return &bt, nil
}

func scanBlockedTime(row pgx.Row) (schedule.BlockedTime, error) {
	var (
		bt         schedule.BlockedTime
		start, end time.Time
		kind       string
		bookingID  pgtype.UUID
		reason     pgtype.Text
		retiredAt  pgtype.Timestamptz
	)
	if err := row.Scan(&bt.ID, &bt.TenantID, &bt.ProfessionalID, &start, &end, &kind, &bookingID, &reason, &bt.CreatedAt, &retiredAt); err != nil {
		return schedule.BlockedTime{}, err
	}
	iv, err := schedule.NewInterval(start, end)
	if err != nil {
		return schedule.BlockedTime{}, err
	}
	bt.Interval = iv
	bt.Kind = schedule.BlockKind(kind)
	bt.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	bt.Reason = reason.String
	bt.CreatedAt = bt.CreatedAt.UTC()
	bt.RetiredAt = pgconv.TimePtrFromPgtype(retiredAt)
	return bt, nil
}
