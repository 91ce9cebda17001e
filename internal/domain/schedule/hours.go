package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"salon-scheduler/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidDayRange = errs.Sentinel(errs.ErrValidation, "opening range must satisfy 0 <= open < close <= 1440")
	ErrOverlappingDay  = errs.Sentinel(errs.ErrValidation, "opening ranges of a day must not overlap")
	ErrUnknownTimeZone = errs.Sentinel(errs.ErrValidation, "unknown time zone")
)

// DayRange is an opening window in minutes after local midnight.
type DayRange struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

func NewDayRange(open, closing int) (DayRange, error) {
	if open < 0 || closing > minutesPerDay || open >= closing {
		return DayRange{}, ErrInvalidDayRange
	}
	return DayRange{Open: open, Close: closing}, nil
}

// ParseDayRange accepts "09:00-18:00". "24:00" is allowed as a closing time.
func ParseDayRange(s string) (DayRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return DayRange{}, ErrInvalidDayRange
	}
	open, err := parseClock(parts[0])
	if err != nil {
		return DayRange{}, err
	}
	closing, err := parseClock(parts[1])
	if err != nil {
		return DayRange{}, err
	}
	return NewDayRange(open, closing)
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, ErrInvalidDayRange
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, ErrInvalidDayRange
	}
	return h*60 + m, nil
}

func (r DayRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.Open/60, r.Open%60, r.Close/60, r.Close%60)
}

// OperatingHours is the weekly opening schedule of a tenant, evaluated in
// the tenant's time zone. A weekday without ranges is closed.
type OperatingHours struct {
	loc    *time.Location
	ranges map[time.Weekday][]DayRange
}

func NewOperatingHours(timeZone string, weekly map[time.Weekday][]DayRange) (OperatingHours, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return OperatingHours{}, errs.Wrap(ErrUnknownTimeZone, timeZone)
	}
	ranges := make(map[time.Weekday][]DayRange, len(weekly))
	for day, rs := range weekly {
		sorted := append([]DayRange(nil), rs...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Open < sorted[j].Open })
		for i, r := range sorted {
			if _, err := NewDayRange(r.Open, r.Close); err != nil {
				return OperatingHours{}, err
			}
			if i > 0 && sorted[i-1].Close > r.Open {
				return OperatingHours{}, ErrOverlappingDay
			}
		}
		if len(sorted) > 0 {
			ranges[day] = sorted
		}
	}
	return OperatingHours{loc: loc, ranges: ranges}, nil
}

func (h OperatingHours) Location() *time.Location {
	if h.loc == nil {
		return time.UTC
	}
	return h.loc
}

func (h OperatingHours) TimeZone() string {
	return h.Location().String()
}

func (h OperatingHours) RangesOn(day time.Weekday) []DayRange {
	return append([]DayRange(nil), h.ranges[day]...)
}

func (h OperatingHours) Weekly() map[time.Weekday][]DayRange {
	out := make(map[time.Weekday][]DayRange, len(h.ranges))
	for d, rs := range h.ranges {
		out[d] = append([]DayRange(nil), rs...)
	}
	return out
}

// Covers returns nil when iv fits inside a single opening range of its
// local day, otherwise an *OutOfHoursError.
func (h OperatingHours) Covers(iv Interval) error {
	loc := h.Location()
	start := iv.Start().In(loc)
	end := iv.End().In(loc)

	startSec := secondsOfDay(start)
	var endSec int
	y, m, d := start.Date()
	ey, em, ed := end.Date()
	switch {
	case ey == y && em == m && ed == d:
		endSec = secondsOfDay(end)
	case secondsOfDay(end) == 0 && end.Sub(start) <= 24*time.Hour:
		// ends exactly at the following midnight
		endSec = minutesPerDay * 60
	default:
		return h.outOfHours(start)
	}

	for _, r := range h.ranges[start.Weekday()] {
		if r.Open*60 <= startSec && endSec <= r.Close*60 {
			return nil
		}
	}
	return h.outOfHours(start)
}

func (h OperatingHours) outOfHours(localStart time.Time) error {
	return &OutOfHoursError{
		Date:     localStart.Format(time.DateOnly),
		Weekday:  localStart.Weekday(),
		TimeZone: h.TimeZone(),
		Open:     h.RangesOn(localStart.Weekday()),
	}
}

// Windows returns the UTC opening intervals of every local day touched by
// period, clipped to period.
func (h OperatingHours) Windows(period Interval) []Interval {
	loc := h.Location()
	first := period.Start().In(loc)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)

	var out []Interval
	for !day.After(period.End()) {
		for _, r := range h.ranges[day.Weekday()] {
			open := time.Date(day.Year(), day.Month(), day.Day(), r.Open/60, r.Open%60, 0, 0, loc)
			closing := time.Date(day.Year(), day.Month(), day.Day(), r.Close/60, r.Close%60, 0, 0, loc)
			w, err := NewInterval(open, closing)
			if err != nil {
				continue
			}
			if clipped, ok := w.Intersect(period); ok {
				out = append(out, clipped)
			}
		}
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	}
	return out
}

// AvailableMinutes is the total opening time inside period for one chair.
func (h OperatingHours) AvailableMinutes(period Interval) int {
	total := 0
	for _, w := range h.Windows(period) {
		total += w.Minutes()
	}
	return total
}

// LocalDay returns the local calendar day containing t as a UTC interval.
func (h OperatingHours) LocalDay(t time.Time) Interval {
	loc := h.Location()
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	end := time.Date(lt.Year(), lt.Month(), lt.Day()+1, 0, 0, 0, 0, loc)
	return Interval{start: start.UTC(), end: end.UTC()}
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
