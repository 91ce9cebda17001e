package finance

import (
	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const occupancyPlaces = 4

// Snapshot is a pure function of the committed ledger for one period. It
// carries no computation timestamp, so recomputing yields identical values.
type Snapshot struct {
	TenantID            uuid.UUID
	Period              Period
	RevenueCents        int64
	BookingCount        int
	AverageTicketCents  int64
	BookedMinutes       int64
	AvailableMinutes    int64
	ActiveProfessionals int
	Occupancy           decimal.Decimal
	GoalCents           int64
	// Percent of the monthly goal reached, two places. Month periods only.
	GoalProgress *decimal.Decimal
}

type Input struct {
	TenantID            uuid.UUID
	Period              Period
	Hours               schedule.OperatingHours
	ActiveProfessionals int
	MonthlyGoalCents    int64
	Bookings            []*booking.Booking
}

// Compute aggregates completed bookings whose start lies inside the period.
func Compute(in Input) Snapshot {
	s := Snapshot{
		TenantID:            in.TenantID,
		Period:              in.Period,
		ActiveProfessionals: in.ActiveProfessionals,
		Occupancy:           decimal.Zero,
	}

	for _, b := range in.Bookings {
		if b.Status() != booking.StatusCompleted || !in.Period.Interval.ContainsInstant(b.Interval().Start()) {
			continue
		}
		s.RevenueCents += b.TotalCents()
		s.BookingCount++
		s.BookedMinutes += int64(b.Interval().Minutes())
	}

	if s.BookingCount > 0 {
		s.AverageTicketCents = decimal.NewFromInt(s.RevenueCents).
			Div(decimal.NewFromInt(int64(s.BookingCount))).
			Round(0).
			IntPart()
	}

	s.AvailableMinutes = int64(in.Hours.AvailableMinutes(in.Period.Interval)) * int64(in.ActiveProfessionals)
	if s.AvailableMinutes > 0 {
		s.Occupancy = decimal.NewFromInt(s.BookedMinutes).
			Div(decimal.NewFromInt(s.AvailableMinutes)).
			Round(occupancyPlaces)
	}

	if in.Period.Kind == PeriodMonth && in.MonthlyGoalCents > 0 {
		s.GoalCents = in.MonthlyGoalCents
		progress := decimal.NewFromInt(s.RevenueCents).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(in.MonthlyGoalCents)).
			Round(2)
		s.GoalProgress = &progress
	}
	return s
}
