package infra

import (
	"errors"
	"log/slog"

	"salon-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Is lets use cases match storage failures against the shared taxonomy
// without importing this package.
func (e RepositoryError) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == errs.ErrNotFound
	case KindConflict:
		return target == errs.ErrConflict
	case KindUnavailable:
		return target == errs.ErrUnavailable
	default:
		return false
	}
}

// WrapRepoErr classifies err from its PostgreSQL code unless kind is given.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindDBFailure {
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	} else {
		slog.Debug("Repository error: "+msg, slog.String("kind", string(k)))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// Exclusion constraint on active blocked time.
	KindConflict RepositoryErrorKind = "CONFLICT"
	// Lock wait or statement timeout; safe to retry later.
	KindUnavailable RepositoryErrorKind = "UNAVAILABLE"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
	pgLockNotAvailable    = "55P03"
	pgQueryCanceled       = "57014"
)

func classify(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return KindDuplicateKey
	case pgForeignKeyViolation:
		return KindForeignKeyViolated
	case pgExclusionViolation:
		return KindConflict
	case pgLockNotAvailable, pgQueryCanceled:
		return KindUnavailable
	default:
		return KindDBFailure
	}
}
