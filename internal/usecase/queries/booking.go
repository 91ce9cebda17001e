package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListBookingsInput struct {
	TenantID       uuid.UUID
	ProfessionalID *uuid.UUID
	From           time.Time
	To             time.Time
	Statuses       []booking.Status
	After          string
	Limit          int
}

type BookingPage struct {
	Items      []*booking.Booking
	NextCursor string
}

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

type BookingQueries interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListBookings(ctx context.Context, in ListBookingsInput) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := q.uow.CommandReads().BookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := shared.Authorize(ctx, b.TenantID(), shared.RoleViewer); err != nil {
		return nil, err
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListBookings(ctx context.Context, in ListBookingsInput) (*BookingPage, error) {
	if _, err := shared.Authorize(ctx, in.TenantID, shared.RoleViewer); err != nil {
		return nil, err
	}
	window, err := schedule.NewInterval(in.From, in.To)
	if err != nil {
		return nil, err
	}
	limit := ValidateLimit(in.Limit)
	filter := shared.BookingFilter{
		TenantID:       in.TenantID,
		ProfessionalID: in.ProfessionalID,
		Window:         window,
		Statuses:       in.Statuses,
		Limit:          limit + 1,
	}
	if in.After != "" {
		start, id, err := DecodeAfterCursor(in.After)
		if err != nil {
			return nil, err
		}
		filter.AfterStart = &start
		filter.AfterID = id
	}

	items, err := q.uow.CommandReads().ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := &BookingPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.Interval().Start(), last.ID())
	}
	return page, nil
}
