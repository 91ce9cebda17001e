//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: pgErrCodeSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, true},
		{"wrapped deadlock", errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "commit"), true},
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestShouldRetryStopsAtMax(t *testing.T) {
	err := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	assert.True(t, shouldRetry(err, 0, 3))
	assert.True(t, shouldRetry(err, 2, 3))
	assert.False(t, shouldRetry(err, 3, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		want := time.Duration(1<<attempt) * base
		for range 20 {
			got := calculateBackoff(attempt, base)
			assert.GreaterOrEqual(t, got, want)
			assert.Less(t, got, want+want/5)
		}
	}
}

func TestCryptoRandInt63nBounds(t *testing.T) {
	assert.Zero(t, cryptoRandInt63n(0))
	assert.Zero(t, cryptoRandInt63n(-5))
	for range 100 {
		n := cryptoRandInt63n(7)
		assert.GreaterOrEqual(t, n, int64(0))
		assert.Less(t, n, int64(7))
	}
}
