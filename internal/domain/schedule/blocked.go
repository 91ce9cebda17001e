package schedule

import (
	"time"

	"github.com/google/uuid"
)

type BlockKind string

const (
	// Materialized from a committed booking, one row per booking.
	BlockKindBooking BlockKind = "booking"
	// Lunch breaks, vacations and similar.
	BlockKindManual BlockKind = "manual"
)

func (k BlockKind) String() string {
	return string(k)
}

// BlockedTime is an interval on a professional's calendar that is not
// available for new bookings. Retired rows are kept for history.
type BlockedTime struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	Interval       Interval
	Kind           BlockKind
	BookingID      *uuid.UUID
	Reason         string
	CreatedAt      time.Time
	RetiredAt      *time.Time
}

func NewBookingBlock(tenantID, professionalID, bookingID uuid.UUID, iv Interval, now time.Time) BlockedTime {
	id := bookingID
	return BlockedTime{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		Interval:       iv,
		Kind:           BlockKindBooking,
		BookingID:      &id,
		CreatedAt:      now,
	}
}

func NewManualBlock(tenantID, professionalID uuid.UUID, iv Interval, reason string, now time.Time) BlockedTime {
	return BlockedTime{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		Interval:       iv,
		Kind:           BlockKindManual,
		Reason:         reason,
		CreatedAt:      now,
	}
}

func (b BlockedTime) Active() bool {
	return b.RetiredAt == nil
}

func (b BlockedTime) OwnedBy(bookingID uuid.UUID) bool {
	return b.BookingID != nil && *b.BookingID == bookingID
}
