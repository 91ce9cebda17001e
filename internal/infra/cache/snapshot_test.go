//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/finance"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func march(t *testing.T) finance.Period {
	t.Helper()
	p, err := finance.PeriodOf(finance.PeriodMonth, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	return p
}

func TestSnapshotStore(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	progress := decimal.RequireFromString("12.50")
	snap := finance.Snapshot{
		TenantID:            tenantID,
		Period:              march(t),
		RevenueCents:        12500,
		BookingCount:        3,
		AverageTicketCents:  4167,
		BookedMinutes:       135,
		AvailableMinutes:    12420,
		ActiveProfessionals: 1,
		Occupancy:           decimal.RequireFromString("0.0109"),
		GoalCents:           100000,
		GoalProgress:        &progress,
	}

	t.Run("round trip under the current generation", func(t *testing.T) {
		store := NewSnapshotStore(NewMemory(), time.Hour)
		gen, err := store.Generation(ctx, tenantID)
		require.NoError(t, err)
		require.Zero(t, gen)

		require.NoError(t, store.Set(ctx, tenantID, gen, snap))

		got, ok, err := store.Get(ctx, tenantID, gen, snap.Period)
		require.NoError(t, err)
		require.True(t, ok)
		if diff := cmp.Diff(snap, *got, decimalEqual); diff != "" {
			t.Errorf("cached snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalidate orphans older generations", func(t *testing.T) {
		store := NewSnapshotStore(NewMemory(), time.Hour)
		require.NoError(t, store.Set(ctx, tenantID, 0, snap))

		require.NoError(t, store.Invalidate(ctx, tenantID))
		gen, err := store.Generation(ctx, tenantID)
		require.NoError(t, err)
		require.Equal(t, int64(1), gen)

		_, ok, err := store.Get(ctx, tenantID, gen, snap.Period)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("generations are per tenant", func(t *testing.T) {
		store := NewSnapshotStore(NewMemory(), time.Hour)
		require.NoError(t, store.Invalidate(ctx, tenantID))

		gen, err := store.Generation(ctx, uuid.New())
		require.NoError(t, err)
		require.Zero(t, gen)
	})

	t.Run("noop never hits", func(t *testing.T) {
		store := NewSnapshotStore(NewNoop(), time.Hour)
		require.NoError(t, store.Set(ctx, tenantID, 0, snap))

		_, ok, err := store.Get(ctx, tenantID, 0, snap.Period)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	n, err := m.Incr(ctx, "gen")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = m.Incr(ctx, "gen")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	require.NoError(t, m.Set(ctx, "name", []byte("ana"), 0))
	_, err = m.Incr(ctx, "name")
	require.Error(t, err)
}
