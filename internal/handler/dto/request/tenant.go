package request

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/pkg/errs"
)

var ErrUnknownWeekday = errs.Sentinel(errs.ErrValidation, "unknown weekday")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

type HoursRequest struct {
	TimeZone string `json:"time_zone" binding:"required"`
	// Keyed by lowercase weekday name; ranges are "HH:MM-HH:MM".
	Weekly map[string][]string `json:"weekly"`
}

func (r HoursRequest) ToDomain() (schedule.OperatingHours, error) {
	weekly := make(map[time.Weekday][]schedule.DayRange, len(r.Weekly))
	for name, ranges := range r.Weekly {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return schedule.OperatingHours{}, errs.Wrap(ErrUnknownWeekday, name)
		}
		for _, s := range ranges {
			dr, err := schedule.ParseDayRange(s)
			if err != nil {
				return schedule.OperatingHours{}, err
			}
			weekly[day] = append(weekly[day], dr)
		}
	}
	return schedule.NewOperatingHours(r.TimeZone, weekly)
}

type UpdateTenantSettingsRequest struct {
	Name             *string       `json:"name,omitempty"`
	Hours            *HoursRequest `json:"hours,omitempty"`
	DefaultRateBps   *int32        `json:"default_rate_bps,omitempty"`
	MonthlyGoalCents *int64        `json:"monthly_goal_cents,omitempty"`
	Active           *bool         `json:"active,omitempty"`
}

func (r UpdateTenantSettingsRequest) ToSettings() (tenant.Settings, error) {
	s := tenant.Settings{
		Name:             r.Name,
		MonthlyGoalCents: r.MonthlyGoalCents,
		Active:           r.Active,
	}
	if r.Hours != nil {
		h, err := r.Hours.ToDomain()
		if err != nil {
			return tenant.Settings{}, err
		}
		s.Hours = &h
	}
	if r.DefaultRateBps != nil {
		rate, err := commission.NewRate(*r.DefaultRateBps)
		if err != nil {
			return tenant.Settings{}, err
		}
		s.DefaultRate = &rate
	}
	return s, nil
}
