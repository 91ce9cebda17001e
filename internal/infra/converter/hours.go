package converter

import (
	"encoding/json"
	"strconv"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgtype"
)

// hoursDocument is the JSONB layout of tenants.hours. Weekdays are keyed
// by time.Weekday number, Sunday = "0".
type hoursDocument struct {
	TimeZone string              `json:"time_zone"`
	Weekly   map[string][]string `json:"weekly"`
}

func HoursToJSON(h schedule.OperatingHours) ([]byte, error) {
	doc := hoursDocument{TimeZone: h.TimeZone(), Weekly: make(map[string][]string)}
	for day, ranges := range h.Weekly() {
		out := make([]string, len(ranges))
		for i, r := range ranges {
			out[i] = r.String()
		}
		doc.Weekly[strconv.Itoa(int(day))] = out
	}
	return json.Marshal(doc)
}

func HoursFromJSON(raw []byte) (schedule.OperatingHours, error) {
	var doc hoursDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return schedule.OperatingHours{}, errs.Wrap(err, "decode operating hours")
	}
	weekly := make(map[time.Weekday][]schedule.DayRange, len(doc.Weekly))
	for key, ranges := range doc.Weekly {
		n, err := strconv.Atoi(key)
		if err != nil || n < 0 || n > 6 {
			return schedule.OperatingHours{}, errs.Newf("invalid weekday key %q", key)
		}
		for _, s := range ranges {
			r, err := schedule.ParseDayRange(s)
			if err != nil {
				return schedule.OperatingHours{}, err
			}
			weekly[time.Weekday(n)] = append(weekly[time.Weekday(n)], r)
		}
	}
	return schedule.NewOperatingHours(doc.TimeZone, weekly)
}

func RateToPgtype(r *commission.Rate) pgtype.Int4 {
	if r == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: r.BasisPoints(), Valid: true}
}

func RateFromPgtype(v pgtype.Int4) (*commission.Rate, error) {
	if !v.Valid {
		return nil, nil
	}
	r, err := commission.NewRate(v.Int32)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
