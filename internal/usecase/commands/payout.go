package commands

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type RecordPayoutInput struct {
	ProfessionalID uuid.UUID
	From           time.Time
	To             time.Time
}

type PayoutResult struct {
	Payout  *commission.Payout
	Created bool
}

//go:generate mockgen -source=payout.go -destination=../../../tests/mock/commands/payout.go -package=commandsmock

type PayoutCommands interface {
	RecordPayout(ctx context.Context, in RecordPayoutInput) (*PayoutResult, error)
}

type payoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway PayoutGateway
	clock   clock.Clock
	cfg     config.BookingConfig
}

func NewPayoutUseCase(uow shared.UnitOfWork, gateway PayoutGateway, clk clock.Clock, cfg config.Config) PayoutCommands {
	return &payoutUseCaseImpl{uow: uow, gateway: gateway, clock: clk, cfg: cfg.Booking}
}

// RecordPayout settles a commission statement at most once per professional
// and period. A repeated call returns the stored record and leaves the
// gateway alone. The gateway runs before commit, so a failed hand-off leaves
// nothing behind and the call can be retried. The reverse also happens: a
// publish followed by a failed commit (deadline, lost connection) means the
// retry publishes again under a new payout id. The gateway's message id is
// derived from professional and period only, and consumers dedupe on it.
func (uc *payoutUseCaseImpl) RecordPayout(ctx context.Context, in RecordPayoutInput) (*PayoutResult, error) {
	period, err := schedule.NewInterval(in.From, in.To)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var result *PayoutResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		pro, err := reads.ProfessionalByID(ctx, in.ProfessionalID)
		if err != nil {
			return err
		}
		if _, err := shared.Authorize(ctx, pro.TenantID(), shared.RoleAdmin); err != nil {
			return err
		}
		if err := tx.LockProfessional(ctx, pro.ID()); err != nil {
			return err
		}

		existing, err := reads.PayoutByPeriod(ctx, pro.ID(), period)
		switch {
		case err == nil:
			result = &PayoutResult{Payout: existing}
			return nil
		case !errs.Is(err, errs.ErrNotFound):
			return err
		}

		t, err := reads.TenantByID(ctx, pro.TenantID())
		if err != nil {
			return err
		}
		st, err := queries.BuildStatement(ctx, reads, t, pro, period)
		if err != nil {
			return err
		}
		p, err := commission.NewPayout(st, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Payouts().Insert(ctx, p); err != nil {
			return err
		}
		if err := uc.gateway.PayoutRecorded(ctx, p); err != nil {
			return errs.Classify(errs.Wrap(err, "payout gateway"), errs.ErrUnavailable)
		}
		result = &PayoutResult{Payout: p, Created: true}
		return nil
	})
	if err != nil {
		return nil, budgetError(err)
	}

	if result.Created {
		slog.Info("payout recorded",
			"payout_id", result.Payout.ID.String(),
			"professional_id", in.ProfessionalID.String(),
			"amount_cents", result.Payout.AmountCents)
	}
	return result, nil
}
