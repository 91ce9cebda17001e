package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/queue"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=queue.go -destination=../../../tests/mock/queries/queue.go -package=queriesmock

type QueueQueries interface {
	// GetQueueStatus is computed from committed bookings on every call.
	GetQueueStatus(ctx context.Context, professionalID uuid.UUID, asOf *time.Time) (queue.Status, error)
}

type queueQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewQueueQueries(uow shared.UnitOfWork, clk clock.Clock) QueueQueries {
	return &queueQueriesImpl{uow: uow, clock: clk}
}

func (q *queueQueriesImpl) GetQueueStatus(ctx context.Context, professionalID uuid.UUID, asOf *time.Time) (queue.Status, error) {
	now := q.clock.Now()
	if asOf != nil {
		now = asOf.UTC()
	}

	var status queue.Status
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		pro, err := reads.ProfessionalByID(ctx, professionalID)
		if err != nil {
			return err
		}
		if _, err := shared.Authorize(ctx, pro.TenantID(), shared.RolePublic); err != nil {
			return err
		}
		t, err := reads.TenantByID(ctx, pro.TenantID())
		if err != nil {
			return err
		}

		proID := pro.ID()
		bookings, err := reads.ListBookings(ctx, shared.BookingFilter{
			TenantID:       t.ID(),
			ProfessionalID: &proID,
			Window:         t.Hours().LocalDay(now),
			Statuses:       []booking.Status{booking.StatusPending, booking.StatusConfirmed},
		})
		if err != nil {
			return err
		}

		items := make([]queue.Item, len(bookings))
		for i, b := range bookings {
			items[i] = queue.ItemFromBooking(b)
		}
		status = queue.Build(items, now)
		return nil
	})
	return status, err
}
