//go:build unit

package commission_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(t *testing.T, bps int32) commission.Rate {
	t.Helper()
	r, err := commission.NewRate(bps)
	require.NoError(t, err)
	return r
}

func TestRate(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		_, err := commission.NewRate(-1)
		require.ErrorIs(t, err, errs.ErrValidation)
		_, err = commission.NewRate(10001)
		require.ErrorIs(t, err, commission.ErrInvalidRate)
	})

	t.Run("parse percent", func(t *testing.T) {
		cases := []struct {
			in      string
			bps     int32
			wantErr bool
		}{
			{in: "40", bps: 4000},
			{in: "12.5", bps: 1250},
			{in: "0.01", bps: 1},
			{in: "0.005", wantErr: true},
			{in: "abc", wantErr: true},
			{in: "101", wantErr: true},
		}
		for _, c := range cases {
			t.Run(c.in, func(t *testing.T) {
				r, err := commission.ParsePercent(c.in)
				if c.wantErr {
					require.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, c.bps, r.BasisPoints())
			})
		}
	})

	t.Run("apply rounds half up", func(t *testing.T) {
		cases := []struct {
			bps   int32
			cents int64
			want  int64
		}{
			{bps: 4000, cents: 3000, want: 1200},
			{bps: 1250, cents: 999, want: 125}, // 124.875
			{bps: 5000, cents: 1, want: 1},     // 0.5
			{bps: 3333, cents: 100, want: 33},  // 33.33
			{bps: 0, cents: 5000, want: 0},
		}
		for _, c := range cases {
			assert.Equal(t, c.want, rate(t, c.bps).Apply(c.cents), "bps=%d cents=%d", c.bps, c.cents)
		}
	})
}

func TestResolve(t *testing.T) {
	svc := rate(t, 5000)
	pro := rate(t, 3000)
	def := rate(t, 1000)

	r, src := commission.Resolve(&svc, &pro, def)
	assert.Equal(t, int32(5000), r.BasisPoints())
	assert.Equal(t, commission.SourceService, src)

	r, src = commission.Resolve(nil, &pro, def)
	assert.Equal(t, int32(3000), r.BasisPoints())
	assert.Equal(t, commission.SourceProfessional, src)

	r, src = commission.Resolve(nil, nil, def)
	assert.Equal(t, int32(1000), r.BasisPoints())
	assert.Equal(t, commission.SourceTenant, src)
}

func TestCalculate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	period, err := schedule.NewInterval(day, day.AddDate(0, 0, 7))
	require.NoError(t, err)

	tenantID, proID := uuid.New(), uuid.New()
	override := rate(t, 5000)
	proRate := rate(t, 4000)
	def := rate(t, 1000)

	later := commission.Sale{
		BookingID: uuid.New(),
		Start:     day.Add(15 * time.Hour),
		Items: []commission.SaleItem{
			{ServiceID: uuid.New(), Name: "Color", PriceCents: 12000, Rate: &override},
		},
	}
	earlier := commission.Sale{
		BookingID: uuid.New(),
		Start:     day.Add(9 * time.Hour),
		Items: []commission.SaleItem{
			{ServiceID: uuid.New(), Name: "Haircut", PriceCents: 3000},
			{ServiceID: uuid.New(), Name: "Beard trim", PriceCents: 1500},
		},
	}
	outside := commission.Sale{
		BookingID: uuid.New(),
		Start:     day.AddDate(0, 0, 7),
		Items:     []commission.SaleItem{{ServiceID: uuid.New(), Name: "Haircut", PriceCents: 3000}},
	}

	st := commission.Calculate(tenantID, proID, period, []commission.Sale{later, outside, earlier}, &proRate, def)

	require.Len(t, st.Lines, 3)
	assert.Equal(t, earlier.BookingID, st.Lines[0].BookingID)
	assert.Equal(t, 1, st.Lines[0].Position)
	assert.Equal(t, 2, st.Lines[1].Position)
	assert.Equal(t, later.BookingID, st.Lines[2].BookingID)
	assert.Equal(t, []int64{1200, 600, 6000},
		[]int64{st.Lines[0].AmountCents, st.Lines[1].AmountCents, st.Lines[2].AmountCents})
	assert.Equal(t, commission.SourceService, st.Lines[2].Source)
	assert.Equal(t, int64(7800), st.TotalCents)
	assert.Equal(t, int64(16500), st.RevenueCents)

	again := commission.Calculate(tenantID, proID, period, []commission.Sale{earlier, later, outside}, &proRate, def)
	if diff := cmp.Diff(st, again, cmp.AllowUnexported(commission.Rate{}, schedule.Interval{})); diff != "" {
		t.Errorf("statement not stable (-first +second):\n%s", diff)
	}
}

func TestPayout(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	period, err := schedule.NewInterval(day, day.AddDate(0, 1, 0))
	require.NoError(t, err)

	empty := commission.Statement{ProfessionalID: uuid.New(), Period: period}
	_, err = commission.NewPayout(empty, day)
	require.ErrorIs(t, err, commission.ErrNothingToPay)

	st := commission.Statement{ProfessionalID: uuid.New(), Period: period, TotalCents: 7800, Lines: make([]commission.Line, 3)}
	p, err := commission.NewPayout(st, day)
	require.NoError(t, err)
	assert.Equal(t, int64(7800), p.AmountCents)
	assert.Equal(t, 3, p.LineCount)

	assert.Equal(t, int64(7800), commission.Due(st, nil))
	assert.Zero(t, commission.Due(st, p))
	st.TotalCents = 9000
	assert.Equal(t, int64(1200), commission.Due(st, p))
}
