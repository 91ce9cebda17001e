package request

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CustomerRequest struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone,omitempty"`
	Email    string     `json:"email,omitempty"`
}

type CreateBookingRequest struct {
	ProfessionalID uuid.UUID   `json:"professional_id" binding:"required"`
	ServiceIDs     []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	Start          time.Time   `json:"start" binding:"required"`
	// Custom end. Omitted means the summed service durations.
	End      *time.Time      `json:"end,omitempty"`
	Customer CustomerRequest `json:"customer"`
	Notes    string          `json:"notes,omitempty"`
	Status   string          `json:"status,omitempty"`
}

func (r CreateBookingRequest) ToInput(tenantID uuid.UUID, idempotencyKey string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		TenantID:       tenantID,
		ProfessionalID: r.ProfessionalID,
		ServiceIDs:     r.ServiceIDs,
		Start:          r.Start,
		End:            r.End,
		Customer: commands.CustomerInput{
			ClientID: r.Customer.ClientID,
			Name:     strings.TrimSpace(r.Customer.Name),
			Phone:    strings.TrimSpace(r.Customer.Phone),
			Email:    strings.TrimSpace(r.Customer.Email),
		},
		Notes:          strings.TrimSpace(r.Notes),
		Status:         booking.Status(r.Status),
		IdempotencyKey: idempotencyKey,
	}
}

type RescheduleBookingRequest struct {
	Start time.Time  `json:"start" binding:"required"`
	End   *time.Time `json:"end,omitempty"`
}

func (r RescheduleBookingRequest) ToInput() commands.RescheduleInput {
	return commands.RescheduleInput{Start: r.Start, End: r.End}
}

type ListBookingsQuery struct {
	From           time.Time `form:"from" binding:"required"`
	To             time.Time `form:"to" binding:"required"`
	ProfessionalID string    `form:"professional_id"`
	Status         []string  `form:"status"`
	After          string    `form:"after"`
	Limit          int       `form:"limit"`
}
