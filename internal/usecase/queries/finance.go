package queries

import (
	"context"
	"log/slog"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/finance"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// SnapshotCache stores snapshots under a per-tenant generation. Booking
// mutations bump the generation, so a snapshot computed before a mutation
// is never served after it.
type SnapshotCache interface {
	Generation(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Get(ctx context.Context, tenantID uuid.UUID, generation int64, period finance.Period) (*finance.Snapshot, bool, error)
	Set(ctx context.Context, tenantID uuid.UUID, generation int64, s finance.Snapshot) error
}

//go:generate mockgen -source=finance.go -destination=../../../tests/mock/queries/finance.go -package=queriesmock

type FinanceQueries interface {
	// Recompute always aggregates from the ledger and refreshes the cache.
	Recompute(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, error)
	// GetSnapshot serves the cache when it holds the current generation.
	GetSnapshot(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, bool, error)
}

type financeQueriesImpl struct {
	uow   shared.UnitOfWork
	cache SnapshotCache
	clock clock.Clock
}

func NewFinanceQueries(uow shared.UnitOfWork, cache SnapshotCache, clk clock.Clock) FinanceQueries {
	return &financeQueriesImpl{uow: uow, cache: cache, clock: clk}
}

func (q *financeQueriesImpl) Recompute(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, error) {
	if _, err := shared.Authorize(ctx, tenantID, shared.RoleAdmin); err != nil {
		return finance.Snapshot{}, err
	}
	gen := q.generation(ctx, tenantID)
	s, err := q.compute(ctx, tenantID, kind, date)
	if err != nil {
		return finance.Snapshot{}, err
	}
	q.store(ctx, tenantID, gen, s)
	return s, nil
}

func (q *financeQueriesImpl) GetSnapshot(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, bool, error) {
	if _, err := shared.Authorize(ctx, tenantID, shared.RoleAdmin); err != nil {
		return finance.Snapshot{}, false, err
	}
	t, err := q.uow.CommandReads().TenantByID(ctx, tenantID)
	if err != nil {
		return finance.Snapshot{}, false, err
	}
	period, err := finance.ParsePeriod(kind, date, t.Hours().Location(), q.clock.Now())
	if err != nil {
		return finance.Snapshot{}, false, err
	}

	gen := q.generation(ctx, tenantID)
	if gen >= 0 {
		cached, ok, err := q.cache.Get(ctx, tenantID, gen, period)
		if err != nil {
			slog.Warn("finance cache read failed", "tenant_id", tenantID.String(), "error", err.Error())
		}
		if ok {
			return *cached, true, nil
		}
	}

	s, err := q.compute(ctx, tenantID, kind, date)
	if err != nil {
		return finance.Snapshot{}, false, err
	}
	q.store(ctx, tenantID, gen, s)
	return s, false, nil
}

func (q *financeQueriesImpl) compute(ctx context.Context, tenantID uuid.UUID, kind finance.PeriodKind, date string) (finance.Snapshot, error) {
	var s finance.Snapshot
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		t, err := reads.TenantByID(ctx, tenantID)
		if err != nil {
			return err
		}
		period, err := finance.ParsePeriod(kind, date, t.Hours().Location(), q.clock.Now())
		if err != nil {
			return err
		}
		pros, err := reads.ActiveProfessionals(ctx, tenantID)
		if err != nil {
			return err
		}
		bookings, err := reads.ListBookings(ctx, shared.BookingFilter{
			TenantID: tenantID,
			Window:   period.Interval,
			Statuses: []booking.Status{booking.StatusCompleted},
		})
		if err != nil {
			return err
		}
		s = finance.Compute(finance.Input{
			TenantID:            tenantID,
			Period:              period,
			Hours:               t.Hours(),
			ActiveProfessionals: len(pros),
			MonthlyGoalCents:    t.MonthlyGoalCents(),
			Bookings:            bookings,
		})
		return nil
	})
	return s, err
}

func (q *financeQueriesImpl) generation(ctx context.Context, tenantID uuid.UUID) int64 {
	gen, err := q.cache.Generation(ctx, tenantID)
	if err != nil {
		slog.Warn("finance cache generation lookup failed", "tenant_id", tenantID.String(), "error", err.Error())
		return -1
	}
	return gen
}

func (q *financeQueriesImpl) store(ctx context.Context, tenantID uuid.UUID, gen int64, s finance.Snapshot) {
	if gen < 0 {
		return
	}
	if err := q.cache.Set(ctx, tenantID, gen, s); err != nil {
		slog.Warn("finance cache write failed", "tenant_id", tenantID.String(), "error", err.Error())
	}
}
