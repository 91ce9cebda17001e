// Package memstore keeps the whole ledger in process memory. It backs local
// demos (STORE_DRIVER=memory) and the use case tests, and honours the same
// locking and atomicity contract as the PostgreSQL unit of work.
package memstore

import (
	"sync"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type idempotencyKey struct {
	tenantID uuid.UUID
	key      string
}

type payoutKey struct {
	professionalID uuid.UUID
	start, end     int64
}

func payoutKeyOf(p *commission.Payout) payoutKey {
	return payoutKey{
		professionalID: p.ProfessionalID,
		start:          p.Period.Start().UnixNano(),
		end:            p.Period.End().UnixNano(),
	}
}

type Store struct {
	mu            sync.RWMutex
	tenants       map[uuid.UUID]*tenant.Tenant
	professionals map[uuid.UUID]*professional.Professional
	services      map[uuid.UUID]*catalog.Service
	bookings      map[uuid.UUID]*booking.Booking
	blocks        map[uuid.UUID]schedule.BlockedTime
	idempotency   map[idempotencyKey]shared.IdempotencyRecord
	payouts       map[payoutKey]*commission.Payout

	locksMu sync.Mutex
	locks   map[uuid.UUID]chan struct{}
}

func NewStore() *Store {
	return &Store{
		tenants:       make(map[uuid.UUID]*tenant.Tenant),
		professionals: make(map[uuid.UUID]*professional.Professional),
		services:      make(map[uuid.UUID]*catalog.Service),
		bookings:      make(map[uuid.UUID]*booking.Booking),
		blocks:        make(map[uuid.UUID]schedule.BlockedTime),
		idempotency:   make(map[idempotencyKey]shared.IdempotencyRecord),
		payouts:       make(map[payoutKey]*commission.Payout),
		locks:         make(map[uuid.UUID]chan struct{}),
	}
}

// Catalog data has no write path through the use cases; these seed it.

func (s *Store) PutTenant(t *tenant.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID()] = cloneTenant(t)
}

func (s *Store) PutProfessional(p *professional.Professional) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.professionals[p.ID()] = p
}

func (s *Store) PutService(svc *catalog.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID()] = svc
}

func (s *Store) lockFor(professionalID uuid.UUID) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.locks[professionalID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[professionalID] = ch
	}
	return ch
}

// Entities handed out are copies so callers mutate them freely until a
// repository write stores them back.

func cloneTenant(t *tenant.Tenant) *tenant.Tenant {
	return tenant.ReconstructTenant(
		t.ID(), t.Name(), t.Slug(), t.Hours(), t.DefaultRate(), t.MonthlyGoalCents(),
		t.IsActive(), t.BookingLinkDigest(), t.CreatedAt(), t.UpdatedAt(),
	)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.TenantID(), b.ProfessionalID(), b.Lines(), b.Customer(), b.Interval(),
		b.Status(), b.TotalCents(), b.Notes(), b.CreatedAt(), b.UpdatedAt(),
	)
}

func clonePayout(p *commission.Payout) *commission.Payout {
	cp := *p
	return &cp
}
