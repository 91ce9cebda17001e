package shared

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: write transaction with retry on transient storage failures.
	// Either everything fn wrote is committed or nothing is.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: single reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	// LockProfessional serializes writers on one professional's calendar
	// until the transaction ends. Writers on other professionals proceed.
	LockProfessional(ctx context.Context, professionalID uuid.UUID) error
	Bookings() BookingRepository
	BlockedTimes() BlockedTimeRepository
	Idempotency() IdempotencyRepository
	Payouts() PayoutRepository
	Tenants() TenantRepository
	Reads() CommandReads
}

// CommandReads return rows regardless of tenant; callers run them through
// the scope guard before use.
type CommandReads interface {
	TenantByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	TenantByLinkDigest(ctx context.Context, digest string) (*tenant.Tenant, error)
	ProfessionalByID(ctx context.Context, id uuid.UUID) (*professional.Professional, error)
	ActiveProfessionals(ctx context.Context, tenantID uuid.UUID) ([]*professional.Professional, error)
	ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Service, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*booking.Booking, error)
	// ActiveBlockedTimes is ordered by start, then id.
	ActiveBlockedTimes(ctx context.Context, tenantID, professionalID uuid.UUID, window schedule.Interval) ([]schedule.BlockedTime, error)
	BlockedTimeByID(ctx context.Context, id uuid.UUID) (*schedule.BlockedTime, error)
	IdempotencyByKey(ctx context.Context, tenantID uuid.UUID, key string) (*IdempotencyRecord, error)
	PayoutByPeriod(ctx context.Context, professionalID uuid.UUID, period schedule.Interval) (*commission.Payout, error)
}

type BookingFilter struct {
	TenantID       uuid.UUID
	ProfessionalID *uuid.UUID
	// Bookings whose start lies in [Window.Start, Window.End).
	Window   schedule.Interval
	Statuses []booking.Status
	// Keyset pagination over (start, id). Zero Limit means no limit.
	AfterStart *time.Time
	AfterID    uuid.UUID
	Limit      int
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Update persists status, interval and updated-at.
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlockedTimeRepository interface {
	Insert(ctx context.Context, bt schedule.BlockedTime) error
	RetireByBooking(ctx context.Context, bookingID uuid.UUID, at time.Time) error
	Retire(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteByBooking(ctx context.Context, bookingID uuid.UUID) error
}

type IdempotencyRepository interface {
	// Insert fails with errs.ErrIdempotencyKeyReuse when an unexpired
	// record already holds the key.
	Insert(ctx context.Context, rec IdempotencyRecord) error
}

type PayoutRepository interface {
	Insert(ctx context.Context, p *commission.Payout) error
}

type TenantRepository interface {
	Update(ctx context.Context, t *tenant.Tenant) error
}
