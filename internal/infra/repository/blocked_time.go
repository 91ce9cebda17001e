package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertBlockedTimeSQL = `
INSERT INTO blocked_times (id, tenant_id, professional_id, starts_at, ends_at, kind, booking_id, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	retireBlockedTimesByBookingSQL = `
UPDATE blocked_times SET retired_at = $2
WHERE booking_id = $1 AND retired_at IS NULL`

	retireBlockedTimeSQL = `
UPDATE blocked_times SET retired_at = $2
WHERE id = $1 AND retired_at IS NULL`

	deleteBlockedTimesByBookingSQL = `DELETE FROM blocked_times WHERE booking_id = $1`
)

// BlockedTimeRepository relies on the blocked_times_no_overlap exclusion
// constraint as the last guard against overlapping active rows.
type BlockedTimeRepository struct {
	db db.DBTX
}

func NewBlockedTimeRepository(dbtx db.DBTX) *BlockedTimeRepository {
	return &BlockedTimeRepository{db: dbtx}
}

func (r *BlockedTimeRepository) Insert(ctx context.Context, bt schedule.BlockedTime) error {
	_, err := r.db.Exec(ctx, insertBlockedTimeSQL,
		bt.ID, bt.TenantID, bt.ProfessionalID, bt.Interval.Start(), bt.Interval.End(),
		bt.Kind.String(), pgconv.UUIDPtrToPgtype(bt.BookingID), pgconv.OptionalText(bt.Reason), bt.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert blocked time", err)
	}
	return nil
}

func (r *BlockedTimeRepository) RetireByBooking(ctx context.Context, bookingID uuid.UUID, at time.Time) error {
	if _, err := r.db.Exec(ctx, retireBlockedTimesByBookingSQL, bookingID, at); err != nil {
		return infra.WrapRepoErr("failed to retire blocked time of booking", err)
	}
	return nil
}

func (r *BlockedTimeRepository) Retire(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, retireBlockedTimeSQL, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to retire blocked time", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("active blocked time not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BlockedTimeRepository) DeleteByBooking(ctx context.Context, bookingID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteBlockedTimesByBookingSQL, bookingID); err != nil {
		return infra.WrapRepoErr("failed to delete blocked time of booking", err)
	}
	return nil
}
