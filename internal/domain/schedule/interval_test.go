//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // Monday

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func iv(t *testing.T, sh, sm, eh, em int) schedule.Interval {
	t.Helper()
	i, err := schedule.NewInterval(at(sh, sm), at(eh, em))
	require.NoError(t, err)
	return i
}

func TestNewInterval(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{name: "valid", start: at(9, 0), end: at(9, 30)},
		{name: "empty interval", start: at(9, 0), end: at(9, 0), errIs: schedule.ErrInvalidInterval},
		{name: "reversed", start: at(10, 0), end: at(9, 0), errIs: schedule.ErrInvalidInterval},
		{name: "zero start", start: time.Time{}, end: at(9, 0), errIs: schedule.ErrInvalidInterval},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := schedule.NewInterval(c.start, c.end)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				require.ErrorIs(t, err, errs.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 30, actual.Minutes())
			assert.Equal(t, time.UTC, actual.Start().Location())
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	base := iv(t, 10, 0, 11, 0)

	cases := []struct {
		name     string
		other    schedule.Interval
		expected bool
	}{
		{name: "touching end is not a conflict", other: iv(t, 11, 0, 11, 30), expected: false},
		{name: "touching start is not a conflict", other: iv(t, 9, 0, 10, 0), expected: false},
		{name: "inside", other: iv(t, 10, 15, 10, 45), expected: true},
		{name: "covering", other: iv(t, 9, 0, 12, 0), expected: true},
		{name: "partial head", other: iv(t, 9, 30, 10, 1), expected: true},
		{name: "partial tail", other: iv(t, 10, 59, 11, 30), expected: true},
		{name: "identical", other: iv(t, 10, 0, 11, 0), expected: true},
		{name: "disjoint", other: iv(t, 13, 0, 14, 0), expected: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, base.Overlaps(c.other))
			assert.Equal(t, c.expected, c.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestInterval_Intersect(t *testing.T) {
	got, ok := iv(t, 9, 0, 11, 0).Intersect(iv(t, 10, 0, 12, 0))
	require.True(t, ok)
	assert.Equal(t, iv(t, 10, 0, 11, 0), got)

	_, ok = iv(t, 9, 0, 10, 0).Intersect(iv(t, 10, 0, 11, 0))
	assert.False(t, ok)
}

func TestFindConflict(t *testing.T) {
	tenantID, proID := uuid.New(), uuid.New()
	bookingA, bookingB := uuid.New(), uuid.New()
	now := at(7, 0)

	busy := []schedule.BlockedTime{
		schedule.NewBookingBlock(tenantID, proID, bookingA, iv(t, 10, 0, 11, 0), now),
		schedule.NewManualBlock(tenantID, proID, iv(t, 12, 0, 13, 0), "lunch", now),
		schedule.NewBookingBlock(tenantID, proID, bookingB, iv(t, 9, 0, 9, 30), now),
	}
	retired := schedule.NewBookingBlock(tenantID, proID, uuid.New(), iv(t, 14, 0, 15, 0), now)
	retiredAt := now
	retired.RetiredAt = &retiredAt
	busy = append(busy, retired)

	t.Run("no conflict for touching booking", func(t *testing.T) {
		assert.Nil(t, schedule.FindConflict(iv(t, 11, 0, 12, 0), busy, nil))
	})

	t.Run("reports booking owner and interval", func(t *testing.T) {
		c := schedule.FindConflict(iv(t, 10, 30, 11, 30), busy, nil)
		require.NotNil(t, c)
		assert.Equal(t, iv(t, 10, 0, 11, 0), c.Conflicting)
		require.NotNil(t, c.BookingID)
		assert.Equal(t, bookingA, *c.BookingID)
		assert.ErrorIs(t, c, errs.ErrConflict)
		assert.Contains(t, c.Error(), bookingA.String())
	})

	t.Run("earliest conflicting block wins", func(t *testing.T) {
		c := schedule.FindConflict(iv(t, 9, 0, 12, 30), busy, nil)
		require.NotNil(t, c)
		assert.Equal(t, bookingB, *c.BookingID)
	})

	t.Run("manual block conflicts", func(t *testing.T) {
		c := schedule.FindConflict(iv(t, 12, 30, 12, 45), busy, nil)
		require.NotNil(t, c)
		assert.Equal(t, schedule.BlockKindManual, c.Kind)
		assert.Nil(t, c.BookingID)
		assert.Equal(t, "lunch", c.Reason)
	})

	t.Run("own booking excluded", func(t *testing.T) {
		assert.Nil(t, schedule.FindConflict(iv(t, 10, 30, 11, 30), busy, &bookingA))
	})

	t.Run("retired block ignored", func(t *testing.T) {
		assert.Nil(t, schedule.FindConflict(iv(t, 14, 0, 15, 0), busy, nil))
	})
}
