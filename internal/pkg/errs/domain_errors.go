package errs

import "errors"

// Error taxonomy shared by every layer. Richer errors (conflicts, hours,
// transitions) match these sentinels through errors.Is.
var (
	// Interval overlaps an active booking or block. Retry with another slot.
	ErrConflict = errors.New("time interval conflict")
	// Candidate falls outside the tenant's operating hours.
	ErrOutOfHours = errors.New("outside operating hours")
	// Booking state machine violation.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Transient failure or exhausted time budget. Safe to retry.
	ErrUnavailable = errors.New("temporarily unavailable")

	ErrValidation = errors.New("validation failed")

	// Same idempotency key replayed with a different request body.
	ErrIdempotencyKeyReuse = errors.New("idempotency key reused with different request")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// Sentinel creates a package-level error that also matches kind via errors.Is.
func Sentinel(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

type classified struct {
	cause error
	kind  error
}

func (e *classified) Error() string { return e.cause.Error() }

func (e *classified) Unwrap() error { return e.cause }

func (e *classified) Is(target error) bool { return target == e.kind }

// Classify tags err with a taxonomy kind while keeping the cause reachable.
func Classify(err, kind error) error {
	if err == nil {
		return nil
	}
	return &classified{cause: err, kind: kind}
}
