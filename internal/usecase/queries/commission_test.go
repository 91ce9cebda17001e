//go:build unit

package queries_test

import (
	"testing"

	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/authtest"
	"salon-scheduler/tests/common/builder"

	"github.com/stretchr/testify/require"
)

func TestCommissionQueries(t *testing.T) {
	salon := builder.NewSalon(t)
	clk := clock.NewMockClock(builder.At(7, 0))
	cfg := config.NewTestConfig()
	bookings := commands.NewBookingUseCase(salon.UoW, clk, cfg, nil)
	staff := authtest.ActorContext(salon.Tenant.ID(), shared.RoleStaff)
	admin := authtest.ActorContext(salon.Tenant.ID(), shared.RoleAdmin)
	q := queries.NewCommissionQueries(salon.UoW)

	rate := builder.Rate(t, 6000)
	bruno := salon.AddProfessional(t, salon.Tenant.ID(), "Bruno", &rate)

	complete := func(in commands.CreateBookingInput) {
		t.Helper()
		res, err := bookings.Create(staff, in)
		require.NoError(t, err)
		_, err = bookings.Confirm(staff, res.Booking.ID())
		require.NoError(t, err)
		_, err = bookings.Complete(staff, res.Booking.ID())
		require.NoError(t, err)
	}
	complete(salon.FullServiceAt(9, 0))
	brunoCut := salon.HaircutAt(9, 0)
	brunoCut.ProfessionalID = bruno.ID()
	complete(brunoCut)

	from, to := builder.At(0, 0), builder.At(23, 0)

	t.Run("service rate wins over the tenant default", func(t *testing.T) {
		st, err := q.Calculate(admin, salon.Professional.ID(), from, to)
		require.NoError(t, err)
		require.Len(t, st.Lines, 2)
		require.Equal(t, int64(4500), st.RevenueCents)
		require.Equal(t, int64(1200+750), st.TotalCents)
	})

	t.Run("professional rate wins over the tenant default", func(t *testing.T) {
		st, err := q.Calculate(admin, bruno.ID(), from, to)
		require.NoError(t, err)
		require.Equal(t, int64(1800), st.TotalCents)
	})

	t.Run("overview covers every active professional by name", func(t *testing.T) {
		out, err := q.Overview(admin, salon.Tenant.ID(), from, to)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Equal(t, "Ana", out[0].ProfessionalName)
		require.Equal(t, "Bruno", out[1].ProfessionalName)
		require.Nil(t, out[0].Payout)
		require.Equal(t, int64(1950), out[0].DueCents)
	})

	t.Run("staff cannot read commissions", func(t *testing.T) {
		_, err := q.Calculate(staff, salon.Professional.ID(), from, to)
		require.ErrorIs(t, err, errs.ErrForbidden)
		_, err = q.Overview(staff, salon.Tenant.ID(), from, to)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
