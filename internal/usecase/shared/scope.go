package shared

import (
	"context"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

type Role string

const (
	// Booking-link visitors. Never issued in tokens.
	RolePublic Role = "public"
	RoleViewer Role = "viewer"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

var roleRank = map[Role]int{
	RolePublic: 0,
	RoleViewer: 1,
	RoleStaff:  2,
	RoleAdmin:  3,
}

var (
	ErrInvalidRole      = errs.Sentinel(errs.ErrForbidden, "unknown role")
	ErrNoActor          = errs.Sentinel(errs.ErrForbidden, "caller identity missing")
	ErrCrossTenant      = errs.Sentinel(errs.ErrForbidden, "resource belongs to another tenant")
	ErrInsufficientRole = errs.Sentinel(errs.ErrForbidden, "insufficient role")
)

// ParseRole accepts the roles an identity token may carry.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok || r == RolePublic {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	return ok && have >= roleRank[min]
}

// Actor is the authenticated caller, bound to exactly one tenant.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

func (a Actor) IsPublic() bool {
	return a.Role == RolePublic
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// Authorize is the tenant isolation guard. Every use case calls it with the
// tenant that owns the rows it is about to touch.
func Authorize(ctx context.Context, tenantID uuid.UUID, min Role) (Actor, error) {
	a, ok := ActorFrom(ctx)
	if !ok {
		return Actor{}, ErrNoActor
	}
	if a.TenantID != tenantID {
		return Actor{}, errs.Wrapf(ErrCrossTenant, "tenant %s", tenantID)
	}
	if !a.Role.AtLeast(min) {
		return Actor{}, errs.Wrapf(ErrInsufficientRole, "requires %s", min)
	}
	return a, nil
}
