package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// ConflictError names the interval that blocks the candidate.
type ConflictError struct {
	Candidate   Interval
	Conflicting Interval
	Kind        BlockKind
	BookingID   *uuid.UUID
	BlockID     uuid.UUID
	Reason      string
}

func (e *ConflictError) Error() string {
	owner := "blocked time " + e.BlockID.String()
	if e.BookingID != nil {
		owner = "booking " + e.BookingID.String()
	}
	return fmt.Sprintf("interval %s conflicts with %s at %s", e.Candidate, owner, e.Conflicting)
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrConflict
}

// OutOfHoursError lists the opening ranges of the local day the candidate
// falls on. Empty Open means the business is closed that day.
type OutOfHoursError struct {
	Date     string
	Weekday  time.Weekday
	TimeZone string
	Open     []DayRange
}

func (e *OutOfHoursError) Error() string {
	if len(e.Open) == 0 {
		return fmt.Sprintf("outside operating hours: closed on %s %s (%s)", e.Weekday, e.Date, e.TimeZone)
	}
	parts := make([]string, len(e.Open))
	for i, r := range e.Open {
		parts[i] = r.String()
	}
	return fmt.Sprintf("outside operating hours: %s %s open %s (%s)", e.Weekday, e.Date, strings.Join(parts, ", "), e.TimeZone)
}

func (e *OutOfHoursError) Is(target error) bool {
	return target == errs.ErrOutOfHours
}

// FindConflict returns the earliest active block overlapping candidate.
// Blocks owned by excludeBookingID are ignored so a booking can be moved
// onto a range that overlaps its current slot.
func FindConflict(candidate Interval, busy []BlockedTime, excludeBookingID *uuid.UUID) *ConflictError {
	var hit *BlockedTime
	for i := range busy {
		b := &busy[i]
		if !b.Active() {
			continue
		}
		if excludeBookingID != nil && b.OwnedBy(*excludeBookingID) {
			continue
		}
		if !b.Interval.Overlaps(candidate) {
			continue
		}
		if hit == nil || b.Interval.Start().Before(hit.Interval.Start()) {
			hit = b
		}
	}
	if hit == nil {
		return nil
	}
	return &ConflictError{
		Candidate:   candidate,
		Conflicting: hit.Interval,
		Kind:        hit.Kind,
		BookingID:   hit.BookingID,
		BlockID:     hit.ID,
		Reason:      hit.Reason,
	}
}

// NextAvailable finds the earliest interval of length d starting at or
// after from that lies inside opening hours and overlaps no active block.
// busy must cover the search horizon.
func NextAvailable(hours OperatingHours, busy []BlockedTime, from time.Time, d time.Duration, horizon time.Duration) (Interval, bool) {
	if d <= 0 {
		return Interval{}, false
	}
	search, err := NewInterval(from, from.Add(horizon))
	if err != nil {
		return Interval{}, false
	}

	active := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if b.Active() {
			active = append(active, b.Interval)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Start().Before(active[j].Start()) })

	for _, w := range hours.Windows(search) {
		cursor := w.Start()
		for _, b := range active {
			if !b.End().After(cursor) || !b.Start().Before(w.End()) {
				continue
			}
			if !cursor.Add(d).After(b.Start()) {
				break
			}
			cursor = b.End()
		}
		if !cursor.Add(d).After(w.End()) {
			iv, err := NewIntervalFor(cursor, d)
			if err == nil {
				return iv, true
			}
		}
	}
	return Interval{}, false
}
