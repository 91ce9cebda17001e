package request

import (
	"time"

	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type FinanceQuery struct {
	Period string `form:"period" binding:"required,oneof=day month"`
	// YYYY-MM-DD for day, YYYY-MM for month. Empty means the current period.
	Date string `form:"date"`
}

type RecordPayoutRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

func (r RecordPayoutRequest) ToInput(professionalID uuid.UUID) commands.RecordPayoutInput {
	return commands.RecordPayoutInput{ProfessionalID: professionalID, From: r.From, To: r.To}
}
