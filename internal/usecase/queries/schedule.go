package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errs.Sentinel(errs.ErrValidation, "duration must be a positive number of minutes")
	ErrNoAvailability  = errs.Sentinel(errs.ErrNotFound, "no free slot within the search horizon")
)

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/queries/schedule.go -package=queriesmock

type ConflictCheck struct {
	Candidate schedule.Interval
	// Nil when the candidate is free and inside opening hours.
	Err error
}

type ScheduleQueries interface {
	GetBlockedTimes(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]schedule.BlockedTime, error)
	CheckConflict(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (*ConflictCheck, error)
	NextAvailable(ctx context.Context, professionalID uuid.UUID, d time.Duration, from *time.Time) (schedule.Interval, error)
}

type scheduleQueriesImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	horizon time.Duration
}

func NewScheduleQueries(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) ScheduleQueries {
	return &scheduleQueriesImpl{uow: uow, clock: clk, horizon: cfg.Booking.SearchHorizon}
}

func (q *scheduleQueriesImpl) professional(ctx context.Context, reads shared.CommandReads, id uuid.UUID, min shared.Role) (*professional.Professional, error) {
	pro, err := reads.ProfessionalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := shared.Authorize(ctx, pro.TenantID(), min); err != nil {
		return nil, err
	}
	return pro, nil
}

func (q *scheduleQueriesImpl) GetBlockedTimes(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]schedule.BlockedTime, error) {
	window, err := schedule.NewInterval(from, to)
	if err != nil {
		return nil, err
	}
	reads := q.uow.CommandReads()
	pro, err := q.professional(ctx, reads, professionalID, shared.RoleViewer)
	if err != nil {
		return nil, err
	}
	return reads.ActiveBlockedTimes(ctx, pro.TenantID(), pro.ID(), window)
}

// CheckConflict is the read-only form of the booking-time validation. A
// Conflict or OutOfHours outcome is a result here, not a failure.
func (q *scheduleQueriesImpl) CheckConflict(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (*ConflictCheck, error) {
	candidate, err := schedule.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	var out *ConflictCheck
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		pro, err := q.professional(ctx, reads, professionalID, shared.RoleViewer)
		if err != nil {
			return err
		}
		t, err := reads.TenantByID(ctx, pro.TenantID())
		if err != nil {
			return err
		}
		hours := t.Hours()
		if err := hours.Covers(candidate); err != nil {
			out = &ConflictCheck{Candidate: candidate, Err: err}
			return nil
		}
		busy, err := reads.ActiveBlockedTimes(ctx, pro.TenantID(), pro.ID(), candidate)
		if err != nil {
			return err
		}
		out = &ConflictCheck{Candidate: candidate}
		if c := schedule.FindConflict(candidate, busy, excludeBookingID); c != nil {
			out.Err = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *scheduleQueriesImpl) NextAvailable(ctx context.Context, professionalID uuid.UUID, d time.Duration, from *time.Time) (schedule.Interval, error) {
	if d <= 0 || d%time.Minute != 0 {
		return schedule.Interval{}, ErrInvalidDuration
	}
	start := q.clock.Now()
	if from != nil && from.After(start) {
		start = from.UTC()
	}
	// Offer slots on whole minutes.
	start = start.Add(time.Minute - time.Nanosecond).Truncate(time.Minute)

	var slot schedule.Interval
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		pro, err := q.professional(ctx, reads, professionalID, shared.RolePublic)
		if err != nil {
			return err
		}
		if err := pro.EnsureBookable(); err != nil {
			return err
		}
		t, err := reads.TenantByID(ctx, pro.TenantID())
		if err != nil {
			return err
		}
		window, err := schedule.NewIntervalFor(start, q.horizon)
		if err != nil {
			return err
		}
		busy, err := reads.ActiveBlockedTimes(ctx, pro.TenantID(), pro.ID(), window)
		if err != nil {
			return err
		}
		var ok bool
		slot, ok = schedule.NextAvailable(t.Hours(), busy, start, d, q.horizon)
		if !ok {
			return ErrNoAvailability
		}
		return nil
	})
	return slot, err
}
