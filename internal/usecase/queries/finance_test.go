//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/finance"
	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/authtest"
	"salon-scheduler/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type FinanceQueriesTestSuite struct {
	suite.Suite
	salon    *builder.Salon
	bookings commands.BookingCommands
	finance  queries.FinanceQueries
	staff    context.Context
	admin    context.Context
}

func (s *FinanceQueriesTestSuite) SetupTest() {
	s.salon = builder.NewSalon(s.T())
	clk := clock.NewMockClock(builder.At(7, 0))
	snapshots := cache.NewSnapshotStore(cache.NewMemory(), time.Hour)

	s.bookings = commands.NewBookingUseCase(s.salon.UoW, clk, config.NewTestConfig(), snapshots)
	s.finance = queries.NewFinanceQueries(s.salon.UoW, snapshots, clk)
	s.staff = authtest.ActorContext(s.salon.Tenant.ID(), shared.RoleStaff)
	s.admin = authtest.ActorContext(s.salon.Tenant.ID(), shared.RoleAdmin)
}

func TestFinanceQueriesSuite(t *testing.T) {
	suite.Run(t, new(FinanceQueriesTestSuite))
}

func (s *FinanceQueriesTestSuite) complete(in commands.CreateBookingInput) {
	s.T().Helper()
	res, err := s.bookings.Create(s.staff, in)
	s.Require().NoError(err)
	_, err = s.bookings.Confirm(s.staff, res.Booking.ID())
	s.Require().NoError(err)
	_, err = s.bookings.Complete(s.staff, res.Booking.ID())
	s.Require().NoError(err)
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func (s *FinanceQueriesTestSuite) TestDaySnapshot() {
	s.complete(s.salon.FullServiceAt(9, 0))
	s.complete(s.salon.HaircutAt(10, 0))
	// Pending bookings are not revenue.
	_, err := s.bookings.Create(s.staff, s.salon.HaircutAt(11, 0))
	s.Require().NoError(err)

	snap, cached, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodDay, "2025-03-10")
	s.Require().NoError(err)
	s.False(cached)

	s.Equal(int64(7500), snap.RevenueCents)
	s.Equal(2, snap.BookingCount)
	s.Equal(int64(3750), snap.AverageTicketCents)
	s.Equal(int64(75), snap.BookedMinutes)
	s.Equal(int64(540), snap.AvailableMinutes)
	s.Equal(1, snap.ActiveProfessionals)
	s.True(decimal.RequireFromString("0.1389").Equal(snap.Occupancy), snap.Occupancy.String())
	s.Nil(snap.GoalProgress)
}

func (s *FinanceQueriesTestSuite) TestMonthSnapshotTracksGoal() {
	s.complete(s.salon.FullServiceAt(9, 0))

	snap, _, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodMonth, "2025-03")
	s.Require().NoError(err)

	s.Equal("2025-03", snap.Period.Label)
	s.Equal(int64(100_000), snap.GoalCents)
	s.Require().NotNil(snap.GoalProgress)
	s.True(decimal.RequireFromString("4.5").Equal(*snap.GoalProgress))
}

func (s *FinanceQueriesTestSuite) TestSnapshotCaching() {
	s.complete(s.salon.HaircutAt(9, 0))

	first, cached, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodDay, "2025-03-10")
	s.Require().NoError(err)
	s.False(cached)

	again, cached, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodDay, "2025-03-10")
	s.Require().NoError(err)
	s.True(cached)
	s.Empty(cmp.Diff(first, again, decimalEqual))

	s.Run("a booking mutation invalidates the cached snapshot", func() {
		s.complete(s.salon.HaircutAt(10, 0))

		fresh, cached, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodDay, "2025-03-10")
		s.Require().NoError(err)
		s.False(cached)
		s.Equal(int64(6000), fresh.RevenueCents)
		s.Equal(2, fresh.BookingCount)
	})
}

func (s *FinanceQueriesTestSuite) TestRecomputeIsIdempotent() {
	s.complete(s.salon.FullServiceAt(9, 0))

	a, err := s.finance.Recompute(s.admin, s.salon.Tenant.ID(), finance.PeriodMonth, "2025-03-10")
	s.Require().NoError(err)
	b, err := s.finance.Recompute(s.admin, s.salon.Tenant.ID(), finance.PeriodMonth, "2025-03-10")
	s.Require().NoError(err)
	s.Empty(cmp.Diff(a, b, decimalEqual))

	// Recompute refreshed the cache.
	cachedSnap, cached, err := s.finance.GetSnapshot(s.admin, s.salon.Tenant.ID(), finance.PeriodMonth, "2025-03")
	s.Require().NoError(err)
	s.True(cached)
	s.Empty(cmp.Diff(a, cachedSnap, decimalEqual))
}

func (s *FinanceQueriesTestSuite) TestRejects() {
	tests := []struct {
		name string
		ctx  context.Context
		kind finance.PeriodKind
		date string
		want error
	}{
		{"staff", s.staff, finance.PeriodDay, "2025-03-10", errs.ErrForbidden},
		{"other tenant admin", authtest.ActorContext(s.salon.AddTenant(s.T(), "Other").ID(), shared.RoleAdmin), finance.PeriodDay, "", errs.ErrForbidden},
		{"malformed date", s.admin, finance.PeriodDay, "10/03/2025", finance.ErrInvalidPeriodDate},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, _, err := s.finance.GetSnapshot(tt.ctx, s.salon.Tenant.ID(), tt.kind, tt.date)
			s.ErrorIs(err, tt.want)
		})
	}
}
