package converter

import (
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRow struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	ClientID       pgtype.UUID
	CustomerName   string
	CustomerPhone  pgtype.Text
	CustomerEmail  pgtype.Text
	StartsAt       time.Time
	EndsAt         time.Time
	Status         string
	TotalCents     int64
	Notes          pgtype.Text
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BookingLineRow struct {
	BookingID       uuid.UUID
	Position        int32
	ServiceID       uuid.UUID
	Name            string
	DurationSeconds int32
	PriceCents      int64
	RateBps         pgtype.Int4
}

func BookingToRow(b *booking.Booking) BookingRow {
	c := b.Customer()
	return BookingRow{
		ID:             b.ID(),
		TenantID:       b.TenantID(),
		ProfessionalID: b.ProfessionalID(),
		ClientID:       pgconv.UUIDPtrToPgtype(c.ClientID),
		CustomerName:   c.Name,
		CustomerPhone:  pgconv.OptionalText(c.Phone),
		CustomerEmail:  pgconv.OptionalText(c.Email),
		StartsAt:       b.Interval().Start(),
		EndsAt:         b.Interval().End(),
		Status:         b.Status().String(),
		TotalCents:     b.TotalCents(),
		Notes:          pgconv.OptionalText(b.Notes().String()),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func BookingLinesToRows(b *booking.Booking) []BookingLineRow {
	lines := b.Lines()
	rows := make([]BookingLineRow, len(lines))
	for i, l := range lines {
		rows[i] = BookingLineRow{
			BookingID:       b.ID(),
			Position:        int32(i),
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			DurationSeconds: int32(l.Duration / time.Second),
			PriceCents:      l.PriceCents,
			RateBps:         RateToPgtype(l.Rate),
		}
	}
	return rows
}

// BookingFromRow expects lines ordered by position.
func BookingFromRow(row BookingRow, lines []BookingLineRow) (*booking.Booking, error) {
	iv, err := schedule.NewInterval(row.StartsAt, row.EndsAt)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	notes, err := booking.NewNotes(row.Notes.String)
	if err != nil {
		return nil, err
	}

	out := make([]booking.ServiceLine, len(lines))
	for i, l := range lines {
		rate, err := RateFromPgtype(l.RateBps)
		if err != nil {
			return nil, err
		}
		out[i] = booking.ServiceLine{
			ServiceID:  l.ServiceID,
			Name:       l.Name,
			Duration:   time.Duration(l.DurationSeconds) * time.Second,
			PriceCents: l.PriceCents,
			Rate:       rate,
		}
	}

	customer := booking.Customer{
		ClientID: pgconv.UUIDPtrFromPgtype(row.ClientID),
		Name:     row.CustomerName,
		Phone:    row.CustomerPhone.String,
		Email:    row.CustomerEmail.String,
	}

	return booking.ReconstructBooking(
		row.ID, row.TenantID, row.ProfessionalID,
		out, customer, iv, status, row.TotalCents, notes,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}
