package queries

import (
	"context"

	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUnknownBookingLink = errs.Sentinel(errs.ErrNotFound, "booking link not found")

//go:generate mockgen -source=public.go -destination=../../../tests/mock/queries/public.go -package=queriesmock

type PublicQueries interface {
	// ResolveBookingLink maps a public token to its tenant and returns a
	// context acting as a public visitor of that tenant.
	ResolveBookingLink(ctx context.Context, token string) (context.Context, *tenant.Tenant, error)
}

type publicQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPublicQueries(uow shared.UnitOfWork) PublicQueries {
	return &publicQueriesImpl{uow: uow}
}

func (q *publicQueriesImpl) ResolveBookingLink(ctx context.Context, token string) (context.Context, *tenant.Tenant, error) {
	if token == "" {
		return nil, nil, ErrUnknownBookingLink
	}
	t, err := q.uow.CommandReads().TenantByLinkDigest(ctx, tenant.DigestBookingToken(token))
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil, ErrUnknownBookingLink
		}
		return nil, nil, err
	}
	if !t.IsActive() {
		return nil, nil, ErrUnknownBookingLink
	}
	return shared.WithActor(ctx, shared.Actor{UserID: uuid.Nil, TenantID: t.ID(), Role: shared.RolePublic}), t, nil
}
