package queries

import (
	"context"
	"sort"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const overviewConcurrency = 4

type CommissionSummary struct {
	ProfessionalName string
	Statement        commission.Statement
	Payout           *commission.Payout
	DueCents         int64
}

//go:generate mockgen -source=commission.go -destination=../../../tests/mock/queries/commission.go -package=queriesmock

type CommissionQueries interface {
	Calculate(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (commission.Statement, error)
	// Overview computes every active professional's statement of a tenant.
	Overview(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]CommissionSummary, error)
}

type commissionQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCommissionQueries(uow shared.UnitOfWork) CommissionQueries {
	return &commissionQueriesImpl{uow: uow}
}

// BuildStatement is shared with payout recording so both see the same lines.
func BuildStatement(ctx context.Context, reads shared.CommandReads, t *tenant.Tenant, pro *professional.Professional, period schedule.Interval) (commission.Statement, error) {
	proID := pro.ID()
	bookings, err := reads.ListBookings(ctx, shared.BookingFilter{
		TenantID:       t.ID(),
		ProfessionalID: &proID,
		Window:         period,
		Statuses:       []booking.Status{booking.StatusCompleted},
	})
	if err != nil {
		return commission.Statement{}, err
	}

	sales := make([]commission.Sale, len(bookings))
	for i, b := range bookings {
		lines := b.Lines()
		items := make([]commission.SaleItem, len(lines))
		for j, l := range lines {
			items[j] = commission.SaleItem{ServiceID: l.ServiceID, Name: l.Name, PriceCents: l.PriceCents, Rate: l.Rate}
		}
		sales[i] = commission.Sale{BookingID: b.ID(), Start: b.Interval().Start(), Items: items}
	}
	return commission.Calculate(t.ID(), proID, period, sales, pro.CommissionRate(), t.DefaultRate()), nil
}

func (q *commissionQueriesImpl) Calculate(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (commission.Statement, error) {
	period, err := schedule.NewInterval(from, to)
	if err != nil {
		return commission.Statement{}, err
	}

	var st commission.Statement
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		pro, err := reads.ProfessionalByID(ctx, professionalID)
		if err != nil {
			return err
		}
		if _, err := shared.Authorize(ctx, pro.TenantID(), shared.RoleAdmin); err != nil {
			return err
		}
		t, err := reads.TenantByID(ctx, pro.TenantID())
		if err != nil {
			return err
		}
		st, err = BuildStatement(ctx, reads, t, pro, period)
		return err
	})
	return st, err
}

func (q *commissionQueriesImpl) Overview(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]CommissionSummary, error) {
	if _, err := shared.Authorize(ctx, tenantID, shared.RoleAdmin); err != nil {
		return nil, err
	}
	period, err := schedule.NewInterval(from, to)
	if err != nil {
		return nil, err
	}

	reads := q.uow.CommandReads()
	t, err := reads.TenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	pros, err := reads.ActiveProfessionals(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make([]CommissionSummary, len(pros))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)
	for i, pro := range pros {
		g.Go(func() error {
			st, err := BuildStatement(gctx, reads, t, pro, period)
			if err != nil {
				return errs.Wrapf(err, "statement for professional %s", pro.ID())
			}
			paid, err := reads.PayoutByPeriod(gctx, pro.ID(), period)
			if err != nil && !errs.Is(err, errs.ErrNotFound) {
				return err
			}
			out[i] = CommissionSummary{
				ProfessionalName: pro.Name(),
				Statement:        st,
				Payout:           paid,
				DueCents:         commission.Due(st, paid),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ProfessionalName < out[j].ProfessionalName })
	return out, nil
}
