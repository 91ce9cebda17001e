package commands

import (
	"context"
	"strings"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxReasonLength = 200

var (
	ErrBookingBlock   = errs.Sentinel(errs.ErrValidation, "booking blocks are released by cancelling the booking")
	ErrReasonTooLong  = errs.Sentinel(errs.ErrValidation, "block reason exceeds maximum length")
	ErrAlreadyRetired = errs.Sentinel(errs.ErrNotFound, "blocked time already released")
)

type BlockTimeInput struct {
	ProfessionalID uuid.UUID
	Start          time.Time
	End            time.Time
	Reason         string
}

//go:generate mockgen -source=blocked_time.go -destination=../../../tests/mock/commands/blocked_time.go -package=commandsmock

type BlockedTimeCommands interface {
	BlockTime(ctx context.Context, in BlockTimeInput) (*schedule.BlockedTime, error)
	UnblockTime(ctx context.Context, id uuid.UUID) error
}

type blockedTimeUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewBlockedTimeUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) BlockedTimeCommands {
	return &blockedTimeUseCaseImpl{uow: uow, clock: clk, cfg: cfg.Booking}
}

// BlockTime reserves time off on a professional's calendar. Operating hours
// are not enforced, but the block may not overlap existing bookings.
func (uc *blockedTimeUseCaseImpl) BlockTime(ctx context.Context, in BlockTimeInput) (*schedule.BlockedTime, error) {
	reason := strings.TrimSpace(in.Reason)
	if len([]rune(reason)) > maxReasonLength {
		return nil, ErrReasonTooLong
	}
	iv, err := schedule.NewInterval(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var created schedule.BlockedTime
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pro, err := tx.Reads().ProfessionalByID(ctx, in.ProfessionalID)
		if err != nil {
			return err
		}
		if _, err := shared.Authorize(ctx, pro.TenantID(), shared.RoleStaff); err != nil {
			return err
		}
		if err := tx.LockProfessional(ctx, pro.ID()); err != nil {
			return err
		}
		if err := CheckConflict(ctx, tx.Reads(), pro.TenantID(), pro.ID(), nil, iv, nil); err != nil {
			return err
		}
		created = schedule.NewManualBlock(pro.TenantID(), pro.ID(), iv, reason, uc.clock.Now())
		return tx.BlockedTimes().Insert(ctx, created)
	})
	if err != nil {
		return nil, budgetError(err)
	}
	return &created, nil
}

func (uc *blockedTimeUseCaseImpl) UnblockTime(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bt, err := tx.Reads().BlockedTimeByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := shared.Authorize(ctx, bt.TenantID, shared.RoleStaff); err != nil {
			return err
		}
		if bt.Kind != schedule.BlockKindManual {
			return ErrBookingBlock
		}
		if !bt.Active() {
			return ErrAlreadyRetired
		}
		if err := tx.LockProfessional(ctx, bt.ProfessionalID); err != nil {
			return err
		}
		return tx.BlockedTimes().Retire(ctx, bt.ID, uc.clock.Now())
	})
	return budgetError(err)
}
