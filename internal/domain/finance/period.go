package finance

import (
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"
)

type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodMonth PeriodKind = "month"
)

var (
	ErrInvalidPeriodKind = errs.Sentinel(errs.ErrValidation, "period must be day or month")
	ErrInvalidPeriodDate = errs.Sentinel(errs.ErrValidation, "period date must be YYYY-MM-DD (or YYYY-MM for month)")
)

func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case PeriodDay, PeriodMonth:
		return PeriodKind(s), nil
	case "":
		return PeriodDay, nil
	}
	return "", ErrInvalidPeriodKind
}

// Period is a local calendar day or month of a tenant, held as UTC bounds.
type Period struct {
	Kind     PeriodKind
	Label    string
	Interval schedule.Interval
}

// PeriodOf returns the period of the given kind that contains t in loc.
func PeriodOf(kind PeriodKind, t time.Time, loc *time.Location) (Period, error) {
	lt := t.In(loc)
	var start, end time.Time
	var label string
	switch kind {
	case PeriodDay:
		start = time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
		label = start.Format(time.DateOnly)
	case PeriodMonth:
		start = time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
		label = start.Format("2006-01")
	default:
		return Period{}, ErrInvalidPeriodKind
	}
	iv, err := schedule.NewInterval(start, end)
	if err != nil {
		return Period{}, err
	}
	return Period{Kind: kind, Label: label, Interval: iv}, nil
}

// ParsePeriod resolves a query like ("month", "2025-03") in the tenant zone.
// An empty date means the period containing now.
func ParsePeriod(kind PeriodKind, date string, loc *time.Location, now time.Time) (Period, error) {
	if date == "" {
		return PeriodOf(kind, now, loc)
	}
	t, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil && kind == PeriodMonth {
		t, err = time.ParseInLocation("2006-01", date, loc)
	}
	if err != nil {
		return Period{}, errs.Wrapf(ErrInvalidPeriodDate, "parse %q", date)
	}
	return PeriodOf(kind, t, loc)
}

func (p Period) String() string {
	return string(p.Kind) + ":" + p.Label
}
