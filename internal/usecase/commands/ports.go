package commands

import (
	"context"

	"salon-scheduler/internal/domain/commission"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

// SnapshotInvalidator drops cached finance snapshots of a tenant after a
// committed booking mutation.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// PayoutGateway hands a recorded payout to the external settlement system.
type PayoutGateway interface {
	PayoutRecorded(ctx context.Context, p *commission.Payout) error
}
