package repository

import (
	"context"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertBookingSQL = `
INSERT INTO bookings (
    id, tenant_id, professional_id, client_id, customer_name, customer_phone, customer_email,
    starts_at, ends_at, status, total_cents, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	insertBookingLineSQL = `
INSERT INTO booking_lines (booking_id, position, service_id, name, duration_seconds, price_cents, rate_bps)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateBookingSQL = `
UPDATE bookings
SET starts_at = $2, ends_at = $3, status = $4, updated_at = $5
WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToRow(b)
	_, err := r.db.Exec(ctx, insertBookingSQL,
		row.ID, row.TenantID, row.ProfessionalID, row.ClientID, row.CustomerName, row.CustomerPhone, row.CustomerEmail,
		row.StartsAt, row.EndsAt, row.Status, row.TotalCents, row.Notes, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	batch := &pgx.Batch{}
	for _, l := range converter.BookingLinesToRows(b) {
		batch.Queue(insertBookingLineSQL, l.BookingID, l.Position, l.ServiceID, l.Name, l.DurationSeconds, l.PriceCents, l.RateBps)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return infra.WrapRepoErr("failed to insert booking lines", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	iv := b.Interval()
	tag, err := r.db.Exec(ctx, updateBookingSQL, b.ID(), iv.Start(), iv.End(), b.Status().String(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
