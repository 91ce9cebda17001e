package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type TenantCommands interface {
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, s tenant.Settings) (*tenant.Tenant, error)
	// IssueBookingLink rotates the public booking token. The plain token is
	// only ever returned here.
	IssueBookingLink(ctx context.Context, tenantID uuid.UUID) (string, error)
}

type tenantUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	invalidator SnapshotInvalidator
}

func NewTenantUseCase(uow shared.UnitOfWork, clk clock.Clock, invalidator SnapshotInvalidator) TenantCommands {
	return &tenantUseCaseImpl{uow: uow, clock: clk, invalidator: invalidator}
}

func (uc *tenantUseCaseImpl) UpdateSettings(ctx context.Context, tenantID uuid.UUID, s tenant.Settings) (*tenant.Tenant, error) {
	if _, err := shared.Authorize(ctx, tenantID, shared.RoleAdmin); err != nil {
		return nil, err
	}

	var updated *tenant.Tenant
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().TenantByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if err := t.Apply(s, uc.clock.Now()); err != nil {
			return err
		}
		updated = t
		return tx.Tenants().Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	// Hours and goal feed the finance snapshot.
	invalidateSnapshots(ctx, uc.invalidator, tenantID)
	return updated, nil
}

func (uc *tenantUseCaseImpl) IssueBookingLink(ctx context.Context, tenantID uuid.UUID) (string, error) {
	if _, err := shared.Authorize(ctx, tenantID, shared.RoleAdmin); err != nil {
		return "", err
	}
	token, err := newLinkToken()
	if err != nil {
		return "", err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().TenantByID(ctx, tenantID)
		if err != nil {
			return err
		}
		t.RotateBookingLink(token, uc.clock.Now())
		return tx.Tenants().Update(ctx, t)
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func newLinkToken() (string, error) {
	var buf [24]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errs.Wrap(err, "generate booking link token")
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}
