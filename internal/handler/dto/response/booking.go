package response

import (
	"time"

	"salon-scheduler/internal/domain/booking"

	"github.com/google/uuid"
)

type CustomerResponse struct {
	ClientID *uuid.UUID `json:"clientId,omitempty"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone,omitempty"`
	Email    string     `json:"email,omitempty"`
}

type BookingLineResponse struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceCents      int64     `json:"priceCents"`
	RateBps         *int32    `json:"rateBps,omitempty"`
}

type BookingResponse struct {
	ID             uuid.UUID             `json:"id"`
	TenantID       uuid.UUID             `json:"tenantId"`
	ProfessionalID uuid.UUID             `json:"professionalId"`
	Status         string                `json:"status"`
	Start          time.Time             `json:"start"`
	End            time.Time             `json:"end"`
	TotalCents     int64                 `json:"totalCents"`
	Customer       CustomerResponse      `json:"customer"`
	Lines          []BookingLineResponse `json:"lines"`
	Notes          *string               `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	c := b.Customer()
	lines := b.Lines()
	out := make([]BookingLineResponse, len(lines))
	for i, l := range lines {
		out[i] = BookingLineResponse{
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			DurationMinutes: int(l.Duration / time.Minute),
			PriceCents:      l.PriceCents,
		}
		if l.Rate != nil {
			bps := l.Rate.BasisPoints()
			out[i].RateBps = &bps
		}
	}

	var notes *string
	if !b.Notes().IsEmpty() {
		n := b.Notes().String()
		notes = &n
	}

	return &BookingResponse{
		ID:             b.ID(),
		TenantID:       b.TenantID(),
		ProfessionalID: b.ProfessionalID(),
		Status:         b.Status().String(),
		Start:          b.Interval().Start(),
		End:            b.Interval().End(),
		TotalCents:     b.TotalCents(),
		Customer: CustomerResponse{
			ClientID: c.ClientID,
			Name:     c.Name,
			Phone:    c.Phone,
			Email:    c.Email,
		},
		Lines:     out,
		Notes:     notes,
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func FromBookings(bs []*booking.Booking, nextCursor string) *BookingListResponse {
	items := make([]*BookingResponse, len(bs))
	for i, b := range bs {
		items[i] = FromBooking(b)
	}
	return &BookingListResponse{Items: items, NextCursor: nextCursor}
}
