//go:build unit

package infra

import (
	"errors"
	"testing"

	"salon-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErrClassifies(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind RepositoryErrorKind
		wantIs   error
	}{
		{"no rows", pgx.ErrNoRows, KindNotFound, errs.ErrNotFound},
		{"exclusion", &pgconn.PgError{Code: pgExclusionViolation}, KindConflict, errs.ErrConflict},
		{"lock timeout", &pgconn.PgError{Code: pgLockNotAvailable}, KindUnavailable, errs.ErrUnavailable},
		{"statement timeout", &pgconn.PgError{Code: pgQueryCanceled}, KindUnavailable, errs.ErrUnavailable},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, KindDuplicateKey, nil},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, KindForeignKeyViolated, nil},
		{"unknown", errors.New("connection reset"), KindDBFailure, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("op", tt.err)
			assert.True(t, IsKind(err, tt.wantKind), err.Error())
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWrapRepoErrExplicitKind(t *testing.T) {
	err := WrapRepoErr("booking not found", nil, KindNotFound)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "NOT_FOUND: booking not found", err.Error())
}
