package booking

import (
	"fmt"

	"salon-scheduler/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrapf(errs.ErrValidation, "unknown booking status %q", s)
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Occupies reports whether a booking in this status holds its interval.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// Queued reports whether the booking is still waiting to be served.
func (s Status) Queued() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionError is returned for any move the state machine forbids.
type TransitionError struct {
	From   Status
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == errs.ErrInvalidTransition
}
