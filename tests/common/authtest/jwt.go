//go:build unit || e2e

package authtest

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/jwt"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken issues a token the way the identity provider would.
func (h *JWTHelper) GenerateToken(t *testing.T, tenantID uuid.UUID, role shared.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(uuid.New(), tenantID, string(role), time.Hour)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns a token that expired well beyond the
// validator's clock-skew leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, tenantID uuid.UUID, role shared.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(uuid.New(), tenantID, string(role), -time.Hour)
	require.NoError(t, err)
	return token
}

// ActorContext binds a caller of tenantID to a background context, the way
// the auth middleware does for a request.
func ActorContext(tenantID uuid.UUID, role shared.Role) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: uuid.New(), TenantID: tenantID, Role: role})
}
