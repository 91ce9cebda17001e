package commands

import (
	"context"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckConflict validates candidate against the professional's active
// blocked time. Hours are only enforced when non-nil; manual blocks may sit
// outside opening hours.
func CheckConflict(
	ctx context.Context,
	reads shared.CommandReads,
	tenantID, professionalID uuid.UUID,
	hours *schedule.OperatingHours,
	candidate schedule.Interval,
	excludeBookingID *uuid.UUID,
) error {
	if hours != nil {
		if err := hours.Covers(candidate); err != nil {
			return err
		}
	}

	busy, err := reads.ActiveBlockedTimes(ctx, tenantID, professionalID, candidate)
	if err != nil {
		return err
	}
	if c := schedule.FindConflict(candidate, busy, excludeBookingID); c != nil {
		return c
	}
	return nil
}
