package schedule

import (
	"fmt"
	"time"

	"salon-scheduler/internal/pkg/errs"
)

var ErrInvalidInterval = errs.Sentinel(errs.ErrValidation, "interval start must be before end")

// Interval is a half-open range [start, end) of UTC instants. Adjacent
// intervals (a.end == b.start) do not overlap.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

func NewIntervalFor(start time.Time, d time.Duration) (Interval, error) {
	return NewInterval(start, start.Add(d))
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

func (i Interval) Minutes() int {
	return int(i.Duration() / time.Minute)
}

func (i Interval) IsZero() bool {
	return i.start.IsZero() && i.end.IsZero()
}

// Equal compares instants, ignoring location.
func (i Interval) Equal(o Interval) bool {
	return i.start.Equal(o.start) && i.end.Equal(o.end)
}

// Overlaps reports strict overlap: start_a < end_b && start_b < end_a.
func (i Interval) Overlaps(o Interval) bool {
	return i.start.Before(o.end) && o.start.Before(i.end)
}

func (i Interval) Contains(o Interval) bool {
	return !o.start.Before(i.start) && !o.end.After(i.end)
}

func (i Interval) ContainsInstant(t time.Time) bool {
	return !t.Before(i.start) && t.Before(i.end)
}

// Intersect returns the common part and false when there is none.
func (i Interval) Intersect(o Interval) (Interval, bool) {
	if !i.Overlaps(o) {
		return Interval{}, false
	}
	start := i.start
	if o.start.After(start) {
		start = o.start
	}
	end := i.end
	if o.end.Before(end) {
		end = o.end
	}
	return Interval{start: start, end: end}, true
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s,%s)", i.start.Format(time.RFC3339), i.end.Format(time.RFC3339))
}

func (i Interval) ToTstzrange() string {
	return i.String()
}
