//go:build unit || e2e

package builder

import (
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"
	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

// BaseDay is a Monday; all builder intervals fall on it unless overridden.
var BaseDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func At(h, m int) time.Time {
	return BaseDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func Interval(sh, sm, eh, em int) schedule.Interval {
	iv, err := schedule.NewInterval(At(sh, sm), At(eh, em))
	if err != nil {
		panic(err)
	}
	return iv
}

type BookingBuilder struct {
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	ClientID       *uuid.UUID
	CustomerName   string
	CustomerPhone  string
	Lines          []booking.ServiceLine
	ServiceIDs     []uuid.UUID
	Start          time.Time
	End            time.Time
	Status         booking.Status
	Notes          string
	CreatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	clientID := uuid.New()
	b := &BookingBuilder{
		TenantID:       uuid.New(),
		ProfessionalID: uuid.New(),
		ClientID:       &clientID,
		CustomerName:   "Maria Silva",
		Start:          At(10, 0),
		End:            At(10, 45),
		Status:         booking.StatusPending,
		CreatedAt:      At(7, 0),
	}
	b.WithLine("Haircut", 30*time.Minute, 3000)
	b.WithLine("Beard trim", 15*time.Minute, 1500)
	return b
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithLine(name string, d time.Duration, priceCents int64) *BookingBuilder {
	id := uuid.New()
	b.Lines = append(b.Lines, booking.ServiceLine{ServiceID: id, Name: name, Duration: d, PriceCents: priceCents})
	b.ServiceIDs = append(b.ServiceIDs, id)
	return b
}

func (b *BookingBuilder) WithInterval(sh, sm, eh, em int) *BookingBuilder {
	b.Start = At(sh, sm)
	b.End = At(eh, em)
	return b
}

func (b *BookingBuilder) AsGuest(name, phone string) *BookingBuilder {
	b.ClientID = nil
	b.CustomerName = name
	b.CustomerPhone = phone
	return b
}

func (b *BookingBuilder) customer() (booking.Customer, error) {
	if b.ClientID == nil {
		return booking.NewGuestCustomer(b.CustomerName, b.CustomerPhone, "")
	}
	return booking.NewRegisteredCustomer(*b.ClientID, b.CustomerName), nil
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	iv, err := schedule.NewInterval(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	customer, err := b.customer()
	if err != nil {
		return nil, err
	}
	notes, err := booking.NewNotes(b.Notes)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(booking.NewParams{
		TenantID:       b.TenantID,
		ProfessionalID: b.ProfessionalID,
		Lines:          b.Lines,
		Customer:       customer,
		Interval:       iv,
		Status:         b.Status,
		Notes:          notes,
	}, b.CreatedAt)
}

// BuildReconstructed skips creation rules so tests can place bookings in
// any status.
func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	customer, _ := b.customer()
	notes, _ := booking.NewNotes(b.Notes)
	iv, err := schedule.NewInterval(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	var total int64
	for _, l := range b.Lines {
		total += l.PriceCents
	}
	return booking.ReconstructBooking(
		uuid.New(), b.TenantID, b.ProfessionalID,
		b.Lines, customer, iv,
		b.Status, total, notes, b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingInput {
	end := b.End
	in := commands.CreateBookingInput{
		TenantID:       b.TenantID,
		ProfessionalID: b.ProfessionalID,
		ServiceIDs:     b.ServiceIDs,
		Start:          b.Start,
		End:            &end,
		Customer: commands.CustomerInput{
			ClientID: b.ClientID,
			Name:     b.CustomerName,
			Phone:    b.CustomerPhone,
		},
		Notes:  b.Notes,
		Status: b.Status,
	}
	return in
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	end := b.End
	return reqdto.CreateBookingRequest{
		ProfessionalID: b.ProfessionalID,
		ServiceIDs:     b.ServiceIDs,
		Start:          b.Start,
		End:            &end,
		Customer: reqdto.CustomerRequest{
			ClientID: b.ClientID,
			Name:     b.CustomerName,
			Phone:    b.CustomerPhone,
		},
		Notes: b.Notes,
	}
}
