// Package errs wraps cockroachdb/errors so every layer gets stack traces
// and the shared error taxonomy from one import.
package errs

import (
	"fmt"
	"log/slog"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark makes err match markErr under Is without changing its message.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// Kind reports the taxonomy sentinel err belongs to, or nil.
func Kind(err error) error {
	for _, kind := range []error{
		ErrConflict, ErrOutOfHours, ErrInvalidTransition, ErrIdempotencyKeyReuse,
		ErrForbidden, ErrNotFound, ErrUnavailable, ErrValidation,
	} {
		if cr.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// StackAttr renders the first frames of err's stack for a log line.
func StackAttr(err error, maxLines int) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return slog.Any("stack", lines)
}
