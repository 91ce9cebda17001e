package readstore

import (
	"context"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/converter"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
    id, tenant_id, professional_id, client_id, customer_name, customer_phone, customer_email,
    starts_at, ends_at, status, total_cents, notes, created_at, updated_at`

const (
	getBookingByIDSQL = `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	listBookingsSQL = `SELECT` + bookingColumns + `
FROM bookings
WHERE tenant_id = $1
  AND ($2::uuid IS NULL OR professional_id = $2)
  AND ($3::timestamptz IS NULL OR starts_at >= $3)
  AND ($4::timestamptz IS NULL OR starts_at < $4)
  AND (cardinality($5::text[]) = 0 OR status = ANY($5))
  AND ($6::timestamptz IS NULL OR (starts_at, id) > ($6, $7))
ORDER BY starts_at, id
LIMIT $8`

	listBookingLinesSQL = `
SELECT booking_id, position, service_id, name, duration_seconds, price_cents, rate_bps
FROM booking_lines
WHERE booking_id = ANY($1)
ORDER BY booking_id, position`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := scanBooking(r.db.QueryRow(ctx, getBookingByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	out, err := r.withLines(ctx, []converter.BookingRow{row})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *BookingReadStore) List(ctx context.Context, f shared.BookingFilter) ([]*booking.Booking, error) {
	var from, to pgtype.Timestamptz
	if !f.Window.IsZero() {
		from = pgconv.TimeToPgtype(f.Window.Start())
		to = pgconv.TimeToPgtype(f.Window.End())
	}
	statuses := make([]string, len(f.Statuses))
	for i, s := range f.Statuses {
		statuses[i] = s.String()
	}
	var after pgtype.Timestamptz
	if f.AfterStart != nil {
		after = pgconv.TimeToPgtype(*f.AfterStart)
	}
	var limit pgtype.Int4
	if f.Limit > 0 {
		limit = pgtype.Int4{Int32: int32(f.Limit), Valid: true}
	}

	rows, err := r.db.Query(ctx, listBookingsSQL,
		f.TenantID, pgconv.UUIDPtrToPgtype(f.ProfessionalID), from, to, statuses, after, f.AfterID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	found, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.BookingRow, error) {
		return scanBooking(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}
	return r.withLines(ctx, found)
}

func (r *BookingReadStore) withLines(ctx context.Context, found []converter.BookingRow) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(found))
	if len(found) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(found))
	for i, b := range found {
		ids[i] = b.ID
	}
	rows, err := r.db.Query(ctx, listBookingLinesSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking lines", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.BookingLineRow, error) {
		var l converter.BookingLineRow
		err := row.Scan(&l.BookingID, &l.Position, &l.ServiceID, &l.Name, &l.DurationSeconds, &l.PriceCents, &l.RateBps)
		return l, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking lines", err)
	}
	byBooking := make(map[uuid.UUID][]converter.BookingLineRow, len(found))
	for _, l := range lines {
		byBooking[l.BookingID] = append(byBooking[l.BookingID], l)
	}

	for _, row := range found {
		b, err := converter.BookingFromRow(row, byBooking[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking row", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (converter.BookingRow, error) {
	var b converter.BookingRow
	err := row.Scan(
		&b.ID, &b.TenantID, &b.ProfessionalID, &b.ClientID, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.StartsAt, &b.EndsAt, &b.Status, &b.TotalCents, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
