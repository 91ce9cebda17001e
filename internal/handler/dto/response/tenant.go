package response

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/tenant"

	"github.com/google/uuid"
)

type HoursResponse struct {
	TimeZone string              `json:"timeZone"`
	Weekly   map[string][]string `json:"weekly"`
}

type TenantResponse struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Hours            HoursResponse `json:"hours"`
	DefaultRateBps   int32         `json:"defaultRateBps"`
	MonthlyGoalCents int64         `json:"monthlyGoalCents"`
	Active           bool          `json:"active"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func FromTenant(t *tenant.Tenant) *TenantResponse {
	weekly := make(map[string][]string)
	for day, ranges := range t.Hours().Weekly() {
		rs := make([]string, len(ranges))
		for i, r := range ranges {
			rs[i] = r.String()
		}
		weekly[strings.ToLower(day.String())] = rs
	}
	return &TenantResponse{
		ID:               t.ID(),
		Name:             t.Name(),
		Slug:             t.Slug(),
		Hours:            HoursResponse{TimeZone: t.Hours().TimeZone(), Weekly: weekly},
		DefaultRateBps:   t.DefaultRate().BasisPoints(),
		MonthlyGoalCents: t.MonthlyGoalCents(),
		Active:           t.IsActive(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

type BookingLinkResponse struct {
	Token string `json:"token"`
	Path  string `json:"path"`
}

func FromBookingLink(token string) *BookingLinkResponse {
	return &BookingLinkResponse{Token: token, Path: "/api/public/" + token + "/bookings"}
}
