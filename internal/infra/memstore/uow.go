package memstore

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{store: u.store, held: make(map[uuid.UUID]chan struct{})}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	// A transaction whose deadline passed never commits.
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.store.commit(tx.ops)
}

// WithinReadOnly reads committed state; every commit is atomic, so a reader
// never sees half of one.
func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	return fn(ctx, u.CommandReads())
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &reads{s: u.store}
}

// op validates against, then mutates, committed state. undo reverts the
// mutation if a later op of the same commit fails.
type op func(s *Store) (undo func(), err error)

func (s *Store) commit(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	undos := make([]func(), 0, len(ops))
	for _, o := range ops {
		undo, err := o(s)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				undos[i]()
			}
			return err
		}
		undos = append(undos, undo)
	}
	return nil
}

type memTx struct {
	store *Store
	held  map[uuid.UUID]chan struct{}
	ops   []op
}

func (t *memTx) LockProfessional(ctx context.Context, professionalID uuid.UUID) error {
	if _, ok := t.held[professionalID]; ok {
		return nil
	}
	if _, err := t.Reads().ProfessionalByID(ctx, professionalID); err != nil {
		return err
	}
	ch := t.store.lockFor(professionalID)
	select {
	case ch <- struct{}{}:
		t.held[professionalID] = ch
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *memTx) release() {
	for _, ch := range t.held {
		<-ch
	}
}

func (t *memTx) add(o op) {
	t.ops = append(t.ops, o)
}

func (t *memTx) Bookings() shared.BookingRepository         { return bookingRepo{t} }
func (t *memTx) BlockedTimes() shared.BlockedTimeRepository { return blockedTimeRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository  { return idempotencyRepo{t} }
func (t *memTx) Payouts() shared.PayoutRepository           { return payoutRepo{t} }
func (t *memTx) Tenants() shared.TenantRepository           { return tenantRepo{t} }
func (t *memTx) Reads() shared.CommandReads                 { return &reads{s: t.store} }

type bookingRepo struct{ tx *memTx }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	b = cloneBooking(b)
	r.tx.add(func(s *Store) (func(), error) {
		if _, ok := s.bookings[b.ID()]; ok {
			return nil, infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
		}
		s.bookings[b.ID()] = b
		return func() { delete(s.bookings, b.ID()) }, nil
	})
	return nil
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	b = cloneBooking(b)
	r.tx.add(func(s *Store) (func(), error) {
		prev, ok := s.bookings[b.ID()]
		if !ok {
			return nil, notFound("booking not found")
		}
		s.bookings[b.ID()] = b
		return func() { s.bookings[b.ID()] = prev }, nil
	})
	return nil
}

func (r bookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.tx.add(func(s *Store) (func(), error) {
		prev, ok := s.bookings[id]
		if !ok {
			return nil, notFound("booking not found")
		}
		delete(s.bookings, id)
		return func() { s.bookings[id] = prev }, nil
	})
	return nil
}

type blockedTimeRepo struct{ tx *memTx }

// Insert enforces the same non-overlap rule as the exclusion constraint of
// the PostgreSQL schema.
func (r blockedTimeRepo) Insert(_ context.Context, bt schedule.BlockedTime) error {
	r.tx.add(func(s *Store) (func(), error) {
		for _, other := range s.blocks {
			if other.ProfessionalID == bt.ProfessionalID && other.Active() && other.Interval.Overlaps(bt.Interval) {
				return nil, infra.WrapRepoErr("blocked time overlaps an active one", nil, infra.KindConflict)
			}
		}
		s.blocks[bt.ID] = bt
		return func() { delete(s.blocks, bt.ID) }, nil
	})
	return nil
}

func (r blockedTimeRepo) RetireByBooking(_ context.Context, bookingID uuid.UUID, at time.Time) error {
	r.tx.add(func(s *Store) (func(), error) {
		prev := make(map[uuid.UUID]schedule.BlockedTime)
		for id, bt := range s.blocks {
			if bt.OwnedBy(bookingID) && bt.Active() {
				prev[id] = bt
				retired := at
				bt.RetiredAt = &retired
				s.blocks[id] = bt
			}
		}
		return func() {
			for id, bt := range prev {
				s.blocks[id] = bt
			}
		}, nil
	})
	return nil
}

func (r blockedTimeRepo) Retire(_ context.Context, id uuid.UUID, at time.Time) error {
	r.tx.add(func(s *Store) (func(), error) {
		bt, ok := s.blocks[id]
		if !ok || !bt.Active() {
			return nil, notFound("active blocked time not found")
		}
		prev := bt
		retired := at
		bt.RetiredAt = &retired
		s.blocks[id] = bt
		return func() { s.blocks[id] = prev }, nil
	})
	return nil
}

func (r blockedTimeRepo) DeleteByBooking(_ context.Context, bookingID uuid.UUID) error {
	r.tx.add(func(s *Store) (func(), error) {
		prev := make(map[uuid.UUID]schedule.BlockedTime)
		for id, bt := range s.blocks {
			if bt.OwnedBy(bookingID) {
				prev[id] = bt
				delete(s.blocks, id)
			}
		}
		return func() {
			for id, bt := range prev {
				s.blocks[id] = bt
			}
		}, nil
	})
	return nil
}

type idempotencyRepo struct{ tx *memTx }

func (r idempotencyRepo) Insert(_ context.Context, rec shared.IdempotencyRecord) error {
	k := idempotencyKey{tenantID: rec.TenantID, key: rec.Key}
	r.tx.add(func(s *Store) (func(), error) {
		prev, exists := s.idempotency[k]
		if exists && !prev.Expired(rec.CreatedAt) {
			return nil, errs.ErrIdempotencyKeyReuse
		}
		s.idempotency[k] = rec
		return func() {
			if exists {
				s.idempotency[k] = prev
			} else {
				delete(s.idempotency, k)
			}
		}, nil
	})
	return nil
}

type payoutRepo struct{ tx *memTx }

func (r payoutRepo) Insert(_ context.Context, p *commission.Payout) error {
	p = clonePayout(p)
	k := payoutKeyOf(p)
	r.tx.add(func(s *Store) (func(), error) {
		if _, ok := s.payouts[k]; ok {
			return nil, infra.WrapRepoErr("payout already recorded for period", nil, infra.KindDuplicateKey)
		}
		s.payouts[k] = p
		return func() { delete(s.payouts, k) }, nil
	})
	return nil
}

type tenantRepo struct{ tx *memTx }

func (r tenantRepo) Update(_ context.Context, t *tenant.Tenant) error {
	t = cloneTenant(t)
	r.tx.add(func(s *Store) (func(), error) {
		prev, ok := s.tenants[t.ID()]
		if !ok {
			return nil, notFound("tenant not found")
		}
		s.tenants[t.ID()] = t
		return func() { s.tenants[t.ID()] = prev }, nil
	})
	return nil
}
