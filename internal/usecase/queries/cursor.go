package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxListLimit    = 200
	CursorVersionV1 = "v1"
)

var ErrInvalidCursor = errs.Sentinel(errs.ErrValidation, "invalid cursor")

// EncodeAfterCursor keys a booking listing by (start, id). Microsecond
// precision matches PostgreSQL timestamptz.
func EncodeAfterCursor(start time.Time, id uuid.UUID) string {
	raw := CursorVersionV1 + ":" + strconv.FormatInt(start.UnixMicro(), 10) + "-" + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "timestamp")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "id")
	}
	return time.UnixMicro(ts).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
