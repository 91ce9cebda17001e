package booking

import (
	"time"

	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

// Booking is the transactional core entity. It is never physically deleted
// through the regular API; cancellation and no-show are status changes.
type Booking struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	professionalID uuid.UUID
	lines          []ServiceLine
	customer       Customer
	interval       schedule.Interval
	status         Status
	totalCents     int64
	notes          Notes
	createdAt      time.Time
	updatedAt      time.Time
}

type NewParams struct {
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	Lines          []ServiceLine
	Customer       Customer
	Interval       schedule.Interval
	Status         Status
	Notes          Notes
}

func NewBooking(p NewParams, now time.Time) (*Booking, error) {
	if len(p.Lines) == 0 {
		return nil, ErrNoServices
	}
	if p.Interval.IsZero() {
		return nil, schedule.ErrInvalidInterval
	}
	if p.Customer.IsGuest() && p.Customer.Name == "" {
		return nil, ErrCustomerRequired
	}
	status := p.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, ErrInvalidStatus
	}

	var total int64
	for _, l := range p.Lines {
		total += l.PriceCents
	}

	return &Booking{
		id:             uuid.New(),
		tenantID:       p.TenantID,
		professionalID: p.ProfessionalID,
		lines:          append([]ServiceLine(nil), p.Lines...),
		customer:       p.Customer,
		interval:       p.Interval,
		status:         status,
		totalCents:     total,
		notes:          p.Notes,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructBooking(
	id, tenantID, professionalID uuid.UUID,
	lines []ServiceLine,
	customer Customer,
	interval schedule.Interval,
	status Status,
	totalCents int64,
	notes Notes,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		tenantID:       tenantID,
		professionalID: professionalID,
		lines:          lines,
		customer:       customer,
		interval:       interval,
		status:         status,
		totalCents:     totalCents,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, "confirm", now)
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, "complete", now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.transition(StatusCancelled, "cancel", now)
}

func (b *Booking) MarkNoShow(now time.Time) error {
	return b.transition(StatusNoShow, "mark as no-show", now)
}

// Reschedule moves a booking that is still waiting to be served. Conflict
// checks are the caller's job.
func (b *Booking) Reschedule(iv schedule.Interval, now time.Time) error {
	if !b.status.Queued() {
		return &TransitionError{From: b.status, Action: "reschedule"}
	}
	if iv.IsZero() {
		return schedule.ErrInvalidInterval
	}
	b.interval = iv
	b.updatedAt = now
	return nil
}

func (b *Booking) transition(next Status, action string, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return &TransitionError{From: b.status, Action: action}
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// ReleasesSlot reports whether the current status no longer holds the
// interval, so its blocked time must be retired.
func (b *Booking) ReleasesSlot() bool {
	return !b.status.Occupies()
}

func (b *Booking) ServiceDuration() time.Duration {
	var d time.Duration
	for _, l := range b.lines {
		d += l.Duration
	}
	return d
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) TenantID() uuid.UUID         { return b.tenantID }
func (b *Booking) ProfessionalID() uuid.UUID   { return b.professionalID }
func (b *Booking) Lines() []ServiceLine        { return append([]ServiceLine(nil), b.lines...) }
func (b *Booking) Customer() Customer          { return b.customer }
func (b *Booking) Interval() schedule.Interval { return b.interval }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) TotalCents() int64           { return b.totalCents }
func (b *Booking) Notes() Notes                { return b.notes }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
