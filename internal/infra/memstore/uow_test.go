//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func activeBlocks(t *testing.T, salon *builder.Salon) []schedule.BlockedTime {
	t.Helper()
	got, err := salon.UoW.CommandReads().ActiveBlockedTimes(context.Background(),
		salon.Tenant.ID(), salon.Professional.ID(), builder.Interval(0, 0, 23, 0))
	require.NoError(t, err)
	return got
}

func TestWithinCommitsAtomically(t *testing.T) {
	ctx := context.Background()
	manual := func(salon *builder.Salon, iv schedule.Interval) schedule.BlockedTime {
		return schedule.NewManualBlock(salon.Tenant.ID(), salon.Professional.ID(), iv, "", builder.At(7, 0))
	}

	t.Run("a failing op undoes the ones before it", func(t *testing.T) {
		salon := builder.NewSalon(t)
		err := salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			require.NoError(t, tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(9, 0, 10, 0))))
			return tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(9, 30, 10, 30)))
		})
		require.ErrorIs(t, err, errs.ErrConflict)
		require.Empty(t, activeBlocks(t, salon))
	})

	t.Run("a callback error commits nothing", func(t *testing.T) {
		salon := builder.NewSalon(t)
		boom := errors.New("boom")
		err := salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			require.NoError(t, tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(9, 0, 10, 0))))
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.Empty(t, activeBlocks(t, salon))
	})

	t.Run("touching blocks both commit", func(t *testing.T) {
		salon := builder.NewSalon(t)
		err := salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			require.NoError(t, tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(9, 0, 10, 0))))
			return tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(10, 0, 11, 0)))
		})
		require.NoError(t, err)
		require.Len(t, activeBlocks(t, salon), 2)
	})

	t.Run("a retired block no longer excludes", func(t *testing.T) {
		salon := builder.NewSalon(t)
		first := manual(salon, builder.Interval(9, 0, 10, 0))
		require.NoError(t, salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.BlockedTimes().Insert(ctx, first)
		}))
		require.NoError(t, salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.BlockedTimes().Retire(ctx, first.ID, builder.At(8, 0)); err != nil {
				return err
			}
			return tx.BlockedTimes().Insert(ctx, manual(salon, builder.Interval(9, 0, 10, 0)))
		}))
		require.Len(t, activeBlocks(t, salon), 1)
	})
}

func TestLockProfessional(t *testing.T) {
	salon := builder.NewSalon(t)

	t.Run("unknown professional is not found", func(t *testing.T) {
		err := salon.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.LockProfessional(ctx, uuid.New())
		})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("re-locking inside one transaction is a no-op", func(t *testing.T) {
		err := salon.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			require.NoError(t, tx.LockProfessional(ctx, salon.Professional.ID()))
			return tx.LockProfessional(ctx, salon.Professional.ID())
		})
		require.NoError(t, err)
	})

	t.Run("a second transaction waits until the deadline", func(t *testing.T) {
		held := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = salon.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
				if err := tx.LockProfessional(ctx, salon.Professional.ID()); err != nil {
					return err
				}
				close(held)
				time.Sleep(200 * time.Millisecond)
				return nil
			})
		}()
		<-held

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := salon.UoW.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.LockProfessional(ctx, salon.Professional.ID())
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)

		<-done
		require.NoError(t, salon.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.LockProfessional(ctx, salon.Professional.ID())
		}))
	})
}
