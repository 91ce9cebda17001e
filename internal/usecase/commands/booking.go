package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownService = errs.Sentinel(errs.ErrNotFound, "service not found")
	ErrPublicStatus   = errs.Sentinel(errs.ErrForbidden, "public bookings always start as pending")
)

type CustomerInput struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone,omitempty"`
	Email    string     `json:"email,omitempty"`
}

func (c CustomerInput) toDomain() (booking.Customer, error) {
	if c.ClientID != nil {
		return booking.NewRegisteredCustomer(*c.ClientID, c.Name), nil
	}
	return booking.NewGuestCustomer(c.Name, c.Phone, c.Email)
}

type CreateBookingInput struct {
	TenantID       uuid.UUID   `json:"tenant_id"`
	ProfessionalID uuid.UUID   `json:"professional_id"`
	ServiceIDs     []uuid.UUID `json:"service_ids"`
	Start          time.Time   `json:"start"`
	// Optional. When set the interval is custom and End is authoritative;
	// otherwise the interval spans the summed service durations.
	End      *time.Time     `json:"end,omitempty"`
	Customer CustomerInput  `json:"customer"`
	Notes    string         `json:"notes,omitempty"`
	Status   booking.Status `json:"status,omitempty"`

	IdempotencyKey string `json:"-"`
}

type RescheduleInput struct {
	Start time.Time
	End   *time.Time
}

type BookingResult struct {
	Booking  *booking.Booking
	Replayed bool
}

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	Cancel(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*booking.Booking, error)
	Confirm(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Complete(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	cfg         config.BookingConfig
	invalidator SnapshotInvalidator
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	invalidator SnapshotInvalidator,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:         uow,
		clock:       clk,
		cfg:         cfg.Booking,
		invalidator: invalidator,
	}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	actor, err := shared.Authorize(ctx, in.TenantID, shared.RolePublic)
	if err != nil {
		return nil, err
	}
	if actor.IsPublic() {
		if in.Status != "" && in.Status != booking.StatusPending {
			return nil, ErrPublicStatus
		}
		in.Customer.ClientID = nil
	}
	customer, err := in.Customer.toDomain()
	if err != nil {
		return nil, err
	}
	notes, err := booking.NewNotes(in.Notes)
	if err != nil {
		return nil, err
	}
	if len(in.ServiceIDs) == 0 {
		return nil, booking.ErrNoServices
	}
	requestHash := calculateRequestHash(in)

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var result *BookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		t, err := activeTenant(ctx, reads, in.TenantID)
		if err != nil {
			return err
		}
		pro, err := reads.ProfessionalByID(ctx, in.ProfessionalID)
		if err != nil {
			return err
		}
		if pro.TenantID() != in.TenantID {
			return shared.ErrCrossTenant
		}
		if err := pro.EnsureBookable(); err != nil {
			return err
		}
		lines, err := uc.snapshotServices(ctx, reads, in.TenantID, in.ServiceIDs)
		if err != nil {
			return err
		}
		iv, err := requestedInterval(in.Start, in.End, lines)
		if err != nil {
			return err
		}

		if err := tx.LockProfessional(ctx, pro.ID()); err != nil {
			return err
		}

		if in.IdempotencyKey != "" {
			replay, err := uc.replay(ctx, reads, in.TenantID, in.IdempotencyKey, requestHash)
			if err != nil || replay != nil {
				result = replay
				return err
			}
		}

		hours := t.Hours()
		if err := CheckConflict(ctx, reads, t.ID(), pro.ID(), &hours, iv, nil); err != nil {
			return err
		}

		now := uc.clock.Now()
		b, err := booking.NewBooking(booking.NewParams{
			TenantID:       t.ID(),
			ProfessionalID: pro.ID(),
			Lines:          lines,
			Customer:       customer,
			Interval:       iv,
			Status:         in.Status,
			Notes:          notes,
		}, now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		if err := tx.BlockedTimes().Insert(ctx, schedule.NewBookingBlock(t.ID(), pro.ID(), b.ID(), iv, now)); err != nil {
			return err
		}
		if in.IdempotencyKey != "" {
			rec := shared.IdempotencyRecord{
				TenantID:    t.ID(),
				Key:         in.IdempotencyKey,
				RequestHash: requestHash,
				BookingID:   b.ID(),
				ExpiresAt:   now.Add(uc.cfg.IdempotencyTTL),
				CreatedAt:   now,
			}
			if err := tx.Idempotency().Insert(ctx, rec); err != nil {
				return err
			}
		}
		result = &BookingResult{Booking: b}
		return nil
	})
	if err != nil {
		err = budgetError(err)
		if kind := errs.Kind(err); kind != nil {
			slog.Debug("booking rejected",
				"tenant_id", in.TenantID.String(),
				"professional_id", in.ProfessionalID.String(),
				"reason", kind.Error())
		}
		return nil, err
	}

	if !result.Replayed {
		uc.invalidate(ctx, in.TenantID)
		slog.Info("booking created",
			"booking_id", result.Booking.ID().String(),
			"tenant_id", in.TenantID.String(),
			"professional_id", in.ProfessionalID.String(),
			"interval", result.Booking.Interval().String())
	}
	return result, nil
}

func (uc *bookingUseCaseImpl) replay(ctx context.Context, reads shared.CommandReads, tenantID uuid.UUID, key, requestHash string) (*BookingResult, error) {
	rec, err := reads.IdempotencyByKey(ctx, tenantID, key)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rec.Expired(uc.clock.Now()) {
		return nil, nil
	}
	if rec.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReuse
	}
	b, err := reads.BookingByID(ctx, rec.BookingID)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b, Replayed: true}, nil
}

func (uc *bookingUseCaseImpl) snapshotServices(ctx context.Context, reads shared.CommandReads, tenantID uuid.UUID, ids []uuid.UUID) ([]booking.ServiceLine, error) {
	found, err := reads.ServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Service, len(found))
	for _, s := range found {
		byID[s.ID()] = s
	}

	lines := make([]booking.ServiceLine, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, errs.Wrapf(ErrUnknownService, "service %s", id)
		}
		if s.TenantID() != tenantID {
			return nil, shared.ErrCrossTenant
		}
		if !s.IsActive() {
			return nil, errs.Wrapf(catalog.ErrInactive, "service %s", id)
		}
		lines = append(lines, booking.SnapshotService(s))
	}
	return lines, nil
}

func requestedInterval(start time.Time, end *time.Time, lines []booking.ServiceLine) (schedule.Interval, error) {
	if end != nil {
		return schedule.NewInterval(start, *end)
	}
	var d time.Duration
	for _, l := range lines {
		d += l.Duration
	}
	return schedule.NewIntervalFor(start, d)
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, id, (*booking.Booking).Cancel)
}

func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, id, (*booking.Booking).Confirm)
}

func (uc *bookingUseCaseImpl) Complete(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, id, (*booking.Booking).Complete)
}

func (uc *bookingUseCaseImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.transition(ctx, id, (*booking.Booking).MarkNoShow)
}

func (uc *bookingUseCaseImpl) transition(ctx context.Context, id uuid.UUID, apply func(*booking.Booking, time.Time) error) (*booking.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, id, shared.RoleStaff)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err := apply(b, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if b.ReleasesSlot() {
			if err := tx.BlockedTimes().RetireByBooking(ctx, b.ID(), now); err != nil {
				return err
			}
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, budgetError(err)
	}

	uc.invalidate(ctx, updated.TenantID())
	slog.Info("booking status changed",
		"booking_id", updated.ID().String(),
		"status", updated.Status().String())
	return updated, nil
}

// Reschedule and Cancel on the same booking serialize on the professional
// lock; whichever commits second re-reads the booking and sees the first.
func (uc *bookingUseCaseImpl) Reschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*booking.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, id, shared.RoleStaff)
		if err != nil {
			return err
		}
		t, err := activeTenant(ctx, tx.Reads(), b.TenantID())
		if err != nil {
			return err
		}

		iv, err := requestedInterval(in.Start, in.End, b.Lines())
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err := b.Reschedule(iv, now); err != nil {
			return err
		}

		hours := t.Hours()
		self := b.ID()
		if err := CheckConflict(ctx, tx.Reads(), t.ID(), b.ProfessionalID(), &hours, iv, &self); err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.BlockedTimes().RetireByBooking(ctx, b.ID(), now); err != nil {
			return err
		}
		if err := tx.BlockedTimes().Insert(ctx, schedule.NewBookingBlock(t.ID(), b.ProfessionalID(), b.ID(), iv, now)); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, budgetError(err)
	}

	uc.invalidate(ctx, updated.TenantID())
	return updated, nil
}

// HardDelete is the administrative escape hatch; regular flows cancel.
func (uc *bookingUseCaseImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var tenantID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, id, shared.RoleAdmin)
		if err != nil {
			return err
		}
		if err := tx.BlockedTimes().DeleteByBooking(ctx, b.ID()); err != nil {
			return err
		}
		tenantID = b.TenantID()
		return tx.Bookings().Delete(ctx, b.ID())
	})
	if err != nil {
		return budgetError(err)
	}

	uc.invalidate(ctx, tenantID)
	slog.Warn("booking hard-deleted", "booking_id", id.String(), "tenant_id", tenantID.String())
	return nil
}

func (uc *bookingUseCaseImpl) invalidate(ctx context.Context, tenantID uuid.UUID) {
	invalidateSnapshots(ctx, uc.invalidator, tenantID)
}

// invalidateSnapshots runs after commit. A failure is logged, not returned;
// the write already stands.
func invalidateSnapshots(ctx context.Context, inv SnapshotInvalidator, tenantID uuid.UUID) {
	if inv == nil {
		return
	}
	// The budget context may be spent by now.
	if err := inv.Invalidate(context.WithoutCancel(ctx), tenantID); err != nil {
		slog.Warn("failed to invalidate finance snapshots",
			"tenant_id", tenantID.String(),
			"error", err.Error())
	}
}

// lockBooking loads a booking, checks the caller may touch it, takes its
// professional's lock and reads it again so the caller sees any write that
// committed while it waited.
func lockBooking(ctx context.Context, tx shared.Tx, id uuid.UUID, min shared.Role) (*booking.Booking, error) {
	b, err := tx.Reads().BookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := shared.Authorize(ctx, b.TenantID(), min); err != nil {
		return nil, err
	}
	if err := tx.LockProfessional(ctx, b.ProfessionalID()); err != nil {
		return nil, err
	}
	return tx.Reads().BookingByID(ctx, id)
}

func activeTenant(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*tenant.Tenant, error) {
	t, err := reads.TenantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, tenant.ErrInactive
	}
	return t, nil
}

// budgetError surfaces an exhausted deadline or a cancelled request as
// Unavailable. Nothing was committed in that case.
func budgetError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Classify(errs.Wrap(err, "booking time budget exhausted"), errs.ErrUnavailable)
	}
	return err
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
