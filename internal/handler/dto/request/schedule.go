package request

import (
	"time"

	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type WindowQuery struct {
	From time.Time `form:"from" binding:"required"`
	To   time.Time `form:"to" binding:"required"`
}

type BlockTimeRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	Reason string    `json:"reason,omitempty"`
}

func (r BlockTimeRequest) ToInput(professionalID uuid.UUID) commands.BlockTimeInput {
	return commands.BlockTimeInput{
		ProfessionalID: professionalID,
		Start:          r.Start,
		End:            r.End,
		Reason:         r.Reason,
	}
}

type ConflictQuery struct {
	Start            time.Time `form:"start" binding:"required"`
	End              time.Time `form:"end" binding:"required"`
	ExcludeBookingID string    `form:"exclude_booking_id"`
}

type NextAvailableQuery struct {
	DurationMinutes int        `form:"duration" binding:"required,min=1"`
	From            *time.Time `form:"from"`
}

type QueueQuery struct {
	AsOf *time.Time `form:"as_of"`
}
