package response

import (
	"errors"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type BlockedTimeResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProfessionalID uuid.UUID  `json:"professionalId"`
	Start          time.Time  `json:"start"`
	End            time.Time  `json:"end"`
	Kind           string     `json:"kind"`
	BookingID      *uuid.UUID `json:"bookingId,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func FromBlockedTime(bt schedule.BlockedTime) *BlockedTimeResponse {
	return &BlockedTimeResponse{
		ID:             bt.ID,
		ProfessionalID: bt.ProfessionalID,
		Start:          bt.Interval.Start(),
		End:            bt.Interval.End(),
		Kind:           bt.Kind.String(),
		BookingID:      bt.BookingID,
		Reason:         bt.Reason,
		CreatedAt:      bt.CreatedAt,
	}
}

func FromBlockedTimes(bts []schedule.BlockedTime) []*BlockedTimeResponse {
	out := make([]*BlockedTimeResponse, len(bts))
	for i, bt := range bts {
		out[i] = FromBlockedTime(bt)
	}
	return out
}

// ConflictResponse names the interval a candidate collided with.
type ConflictResponse struct {
	ConflictingStart time.Time  `json:"conflictingStart"`
	ConflictingEnd   time.Time  `json:"conflictingEnd"`
	Kind             string     `json:"kind"`
	BookingID        *uuid.UUID `json:"bookingId,omitempty"`
	BlockID          uuid.UUID  `json:"blockId"`
	Reason           string     `json:"reason,omitempty"`
}

func FromConflictError(e *schedule.ConflictError) *ConflictResponse {
	return &ConflictResponse{
		ConflictingStart: e.Conflicting.Start(),
		ConflictingEnd:   e.Conflicting.End(),
		Kind:             e.Kind.String(),
		BookingID:        e.BookingID,
		BlockID:          e.BlockID,
		Reason:           e.Reason,
	}
}

type OutOfHoursResponse struct {
	Date     string   `json:"date"`
	Weekday  string   `json:"weekday"`
	TimeZone string   `json:"timeZone"`
	Open     []string `json:"open"`
}

func FromOutOfHoursError(e *schedule.OutOfHoursError) *OutOfHoursResponse {
	open := make([]string, len(e.Open))
	for i, r := range e.Open {
		open[i] = r.String()
	}
	return &OutOfHoursResponse{
		Date:     e.Date,
		Weekday:  e.Weekday.String(),
		TimeZone: e.TimeZone,
		Open:     open,
	}
}

type ConflictCheckResponse struct {
	Start      time.Time           `json:"start"`
	End        time.Time           `json:"end"`
	Available  bool                `json:"available"`
	Conflict   *ConflictResponse   `json:"conflict,omitempty"`
	OutOfHours *OutOfHoursResponse `json:"outOfHours,omitempty"`
	Message    string              `json:"message,omitempty"`
}

func FromConflictCheck(check *queries.ConflictCheck) *ConflictCheckResponse {
	out := &ConflictCheckResponse{
		Start:     check.Candidate.Start(),
		End:       check.Candidate.End(),
		Available: check.Err == nil,
	}
	if check.Err == nil {
		return out
	}
	out.Message = check.Err.Error()
	var (
		ce *schedule.ConflictError
		oe *schedule.OutOfHoursError
	)
	if errors.As(check.Err, &ce) {
		out.Conflict = FromConflictError(ce)
	}
	if errors.As(check.Err, &oe) {
		out.OutOfHours = FromOutOfHoursError(oe)
	}
	return out
}

type SlotResponse struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

func FromSlot(iv schedule.Interval) *SlotResponse {
	return &SlotResponse{Start: iv.Start(), End: iv.End(), DurationMinutes: iv.Minutes()}
}
