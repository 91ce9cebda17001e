package memstore

import (
	"context"
	"slices"
	"sort"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// reads sees committed state only; a transaction's own writes become
// visible when it commits.
type reads struct {
	s *Store
}

var _ shared.CommandReads = (*reads)(nil)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (r *reads) TenantByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, notFound("tenant not found")
	}
	return cloneTenant(t), nil
}

func (r *reads) TenantByLinkDigest(_ context.Context, digest string) (*tenant.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tenants {
		if digest != "" && t.BookingLinkDigest() == digest {
			return cloneTenant(t), nil
		}
	}
	return nil, notFound("tenant not found by booking link")
}

func (r *reads) ProfessionalByID(_ context.Context, id uuid.UUID) (*professional.Professional, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.professionals[id]
	if !ok {
		return nil, notFound("professional not found")
	}
	return p, nil
}

func (r *reads) ActiveProfessionals(_ context.Context, tenantID uuid.UUID) ([]*professional.Professional, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*professional.Professional, 0)
	for _, p := range r.s.professionals {
		if p.TenantID() == tenantID && p.IsActive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// ServicesByIDs skips unknown ids; the caller compares counts.
func (r *reads) ServicesByIDs(_ context.Context, ids []uuid.UUID) ([]*catalog.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*catalog.Service, 0, len(ids))
	for _, id := range ids {
		if svc, ok := r.s.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return cloneBooking(b), nil
}

func (r *reads) ListBookings(_ context.Context, f shared.BookingFilter) ([]*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*booking.Booking, 0)
	for _, b := range r.s.bookings {
		if !matches(b, f) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return startThenID(out[i].Interval(), out[i].ID(), out[j].Interval(), out[j].ID())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matches(b *booking.Booking, f shared.BookingFilter) bool {
	if b.TenantID() != f.TenantID {
		return false
	}
	if f.ProfessionalID != nil && b.ProfessionalID() != *f.ProfessionalID {
		return false
	}
	start := b.Interval().Start()
	if !f.Window.IsZero() && !f.Window.ContainsInstant(start) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status()) {
		return false
	}
	if f.AfterStart != nil {
		if start.Before(*f.AfterStart) {
			return false
		}
		if start.Equal(*f.AfterStart) && b.ID().String() <= f.AfterID.String() {
			return false
		}
	}
	return true
}

func startThenID(a schedule.Interval, aID uuid.UUID, b schedule.Interval, bID uuid.UUID) bool {
	if !a.Start().Equal(b.Start()) {
		return a.Start().Before(b.Start())
	}
	return aID.String() < bID.String()
}

func (r *reads) ActiveBlockedTimes(_ context.Context, tenantID, professionalID uuid.UUID, window schedule.Interval) ([]schedule.BlockedTime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]schedule.BlockedTime, 0)
	for _, bt := range r.s.blocks {
		if bt.TenantID != tenantID || bt.ProfessionalID != professionalID || !bt.Active() {
			continue
		}
		if !window.IsZero() && !bt.Interval.Overlaps(window) {
			continue
		}
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool {
		return startThenID(out[i].Interval, out[i].ID, out[j].Interval, out[j].ID)
	})
	return out, nil
}

func (r *reads) BlockedTimeByID(_ context.Context, id uuid.UUID) (*schedule.BlockedTime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	bt, ok := r.s.blocks[id]
	if !ok {
		return nil, notFound("blocked time not found")
	}
	return &bt, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, tenantID uuid.UUID, key string) (*shared.IdempotencyRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.idempotency[idempotencyKey{tenantID: tenantID, key: key}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r *reads) PayoutByPeriod(_ context.Context, professionalID uuid.UUID, period schedule.Interval) (*commission.Payout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payouts[payoutKey{
		professionalID: professionalID,
		start:          period.Start().UnixNano(),
		end:            period.End().UnixNano(),
	}]
	if !ok {
		return nil, notFound("payout not found")
	}
	return clonePayout(p), nil
}
