package commission

import (
	"sort"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNothingToPay = errs.Sentinel(errs.ErrValidation, "statement has no commission to pay out")

// Sale is a completed booking as seen by the calculator.
type Sale struct {
	BookingID uuid.UUID
	Start     time.Time
	Items     []SaleItem
}

type SaleItem struct {
	ServiceID  uuid.UUID
	Name       string
	PriceCents int64
	// Service-level override snapshotted onto the booking line.
	Rate *Rate
}

type Line struct {
	BookingID    uuid.UUID
	BookingStart time.Time
	Position     int
	ServiceID    uuid.UUID
	ServiceName  string
	PriceCents   int64
	Rate         Rate
	Source       Source
	AmountCents  int64
}

type Statement struct {
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	Period         schedule.Interval
	Lines          []Line
	RevenueCents   int64
	TotalCents     int64
}

// Calculate builds one line per service item of every sale starting inside
// period. Lines follow booking start, booking id, then item position so the
// statement is stable across runs.
func Calculate(
	tenantID, professionalID uuid.UUID,
	period schedule.Interval,
	sales []Sale,
	professionalRate *Rate,
	tenantDefault Rate,
) Statement {
	inRange := make([]Sale, 0, len(sales))
	for _, s := range sales {
		if period.ContainsInstant(s.Start) {
			inRange = append(inRange, s)
		}
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		if !inRange[i].Start.Equal(inRange[j].Start) {
			return inRange[i].Start.Before(inRange[j].Start)
		}
		return inRange[i].BookingID.String() < inRange[j].BookingID.String()
	})

	st := Statement{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		Period:         period,
		Lines:          []Line{},
	}
	for _, s := range inRange {
		for pos, item := range s.Items {
			rate, source := Resolve(item.Rate, professionalRate, tenantDefault)
			amount := rate.Apply(item.PriceCents)
			st.Lines = append(st.Lines, Line{
				BookingID:    s.BookingID,
				BookingStart: s.Start,
				Position:     pos + 1,
				ServiceID:    item.ServiceID,
				ServiceName:  item.Name,
				PriceCents:   item.PriceCents,
				Rate:         rate,
				Source:       source,
				AmountCents:  amount,
			})
			st.RevenueCents += item.PriceCents
			st.TotalCents += amount
		}
	}
	return st
}

// Payout records that a statement was settled. At most one exists per
// professional and period.
type Payout struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	Period         schedule.Interval
	AmountCents    int64
	LineCount      int
	CreatedAt      time.Time
}

func NewPayout(st Statement, now time.Time) (*Payout, error) {
	if st.TotalCents <= 0 {
		return nil, ErrNothingToPay
	}
	return &Payout{
		ID:             uuid.New(),
		TenantID:       st.TenantID,
		ProfessionalID: st.ProfessionalID,
		Period:         st.Period,
		AmountCents:    st.TotalCents,
		LineCount:      len(st.Lines),
		CreatedAt:      now,
	}, nil
}

// Due is what remains unpaid for a statement given an existing payout.
func Due(st Statement, paid *Payout) int64 {
	if paid == nil {
		return st.TotalCents
	}
	if d := st.TotalCents - paid.AmountCents; d > 0 {
		return d
	}
	return 0
}
