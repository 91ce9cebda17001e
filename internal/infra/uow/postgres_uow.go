package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/readstore"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return &PostgresUoW{
		pool:        pool,
		lockTimeout: cfg.DB.LockTimeout,
	}
}

// ReadCommitted is enough: calendar writers serialize on the professional
// row lock and re-read after acquiring it.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Repeatable read gives multi-table reads one snapshot.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Classify(errs.Mark(err, errTransactionBegin), errs.ErrUnavailable)
		}

		tx := newPgTx(pgxTx, u.lockTimeout)

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Classify(errs.Mark(err, errMaxRetriesExceeded), errs.ErrUnavailable)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errs.Classify(errMaxRetriesExceeded, errs.ErrUnavailable)
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Classify(errs.Mark(err, errTransactionBegin), errs.ErrUnavailable)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, newCommandReads(pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

// pgTx builds every repository up front; they are cheap wrappers around
// the same pgx.Tx.
type pgTx struct {
	dbtx        db.DBTX
	lockTimeout time.Duration
	locked      map[uuid.UUID]bool

	bookings     *repository.BookingRepository
	blockedTimes *repository.BlockedTimeRepository
	idempotency  *repository.IdempotencyRepository
	payouts      *repository.PayoutRepository
	tenants      *repository.TenantRepository
	reads        *commandReads
}

func newPgTx(dbtx db.DBTX, lockTimeout time.Duration) *pgTx {
	return &pgTx{
		dbtx:         dbtx,
		lockTimeout:  lockTimeout,
		locked:       make(map[uuid.UUID]bool),
		bookings:     repository.NewBookingRepository(dbtx),
		blockedTimes: repository.NewBlockedTimeRepository(dbtx),
		idempotency:  repository.NewIdempotencyRepository(dbtx),
		payouts:      repository.NewPayoutRepository(dbtx),
		tenants:      repository.NewTenantRepository(dbtx),
		reads:        newCommandReads(dbtx),
	}
}

func (t *pgTx) LockProfessional(ctx context.Context, professionalID uuid.UUID) error {
	if t.locked[professionalID] {
		return nil
	}
	if t.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", t.lockTimeout.Milliseconds())
		if _, err := t.dbtx.Exec(ctx, stmt); err != nil {
			return infra.WrapRepoErr("failed to set lock timeout", err)
		}
	}
	if err := t.reads.professionals.Lock(ctx, professionalID); err != nil {
		return err
	}
	t.locked[professionalID] = true
	return nil
}

func (t *pgTx) Bookings() shared.BookingRepository         { return t.bookings }
func (t *pgTx) BlockedTimes() shared.BlockedTimeRepository { return t.blockedTimes }
func (t *pgTx) Idempotency() shared.IdempotencyRepository  { return t.idempotency }
func (t *pgTx) Payouts() shared.PayoutRepository           { return t.payouts }
func (t *pgTx) Tenants() shared.TenantRepository           { return t.tenants }
func (t *pgTx) Reads() shared.CommandReads                 { return t.reads }

// commandReads is built eagerly: the commission overview shares one
// instance across goroutines.
type commandReads struct {
	tenants       *readstore.TenantReadStore
	professionals *readstore.ProfessionalReadStore
	services      *readstore.ServiceReadStore
	bookings      *readstore.BookingReadStore
	blockedTimes  *readstore.BlockedTimeReadStore
	idempotency   *readstore.IdempotencyReadStore
	payouts       *readstore.PayoutReadStore
}

func newCommandReads(dbtx db.DBTX) *commandReads {
	return &commandReads{
		tenants:       readstore.NewTenantReadStore(dbtx),
		professionals: readstore.NewProfessionalReadStore(dbtx),
		services:      readstore.NewServiceReadStore(dbtx),
		bookings:      readstore.NewBookingReadStore(dbtx),
		blockedTimes:  readstore.NewBlockedTimeReadStore(dbtx),
		idempotency:   readstore.NewIdempotencyReadStore(dbtx),
		payouts:       readstore.NewPayoutReadStore(dbtx),
	}
}

func (r *commandReads) TenantByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return r.tenants.FindByID(ctx, id)
}

func (r *commandReads) TenantByLinkDigest(ctx context.Context, digest string) (*tenant.Tenant, error) {
	return r.tenants.FindByLinkDigest(ctx, digest)
}

func (r *commandReads) ProfessionalByID(ctx context.Context, id uuid.UUID) (*professional.Professional, error) {
	return r.professionals.FindByID(ctx, id)
}

func (r *commandReads) ActiveProfessionals(ctx context.Context, tenantID uuid.UUID) ([]*professional.Professional, error) {
	return r.professionals.ListActive(ctx, tenantID)
}

func (r *commandReads) ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Service, error) {
	return r.services.FindByIDs(ctx, ids)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.bookings.FindByID(ctx, id)
}

func (r *commandReads) ListBookings(ctx context.Context, filter shared.BookingFilter) ([]*booking.Booking, error) {
	return r.bookings.List(ctx, filter)
}

func (r *commandReads) ActiveBlockedTimes(ctx context.Context, tenantID, professionalID uuid.UUID, window schedule.Interval) ([]schedule.BlockedTime, error) {
	return r.blockedTimes.ListActive(ctx, tenantID, professionalID, window)
}

func (r *commandReads) BlockedTimeByID(ctx context.Context, id uuid.UUID) (*schedule.BlockedTime, error) {
	return r.blockedTimes.FindByID(ctx, id)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, tenantID uuid.UUID, key string) (*shared.IdempotencyRecord, error) {
	return r.idempotency.Get(ctx, tenantID, key)
}

func (r *commandReads) PayoutByPeriod(ctx context.Context, professionalID uuid.UUID, period schedule.Interval) (*commission.Payout, error) {
	return r.payouts.FindByPeriod(ctx, professionalID, period)
}
