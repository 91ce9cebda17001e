package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/cookie"
	"salon-scheduler/internal/usecase"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingToken = errors.New("access token required")
	errRateLimited  = errors.New("rate limit exceeded")
)

const (
	ctxActorKey  = "actor"
	ctxTenantKey = "tenant_id"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	public         queries.PublicQueries
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, public queries.PublicQueries) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		public:         public,
	}
}

// RequireAuth binds the token's caller to the request context, where the
// use cases' scope guard picks it up.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// RequireBookingLink resolves the :token path parameter to its tenant and
// acts as an anonymous visitor of that tenant.
func (m *AuthMiddleware) RequireBookingLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, t, err := m.public.ResolveBookingLink(c.Request.Context(), c.Param("token"))
		if err != nil {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking link not found", nil)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxTenantKey, t.ID())
		if actor, ok := shared.ActorFrom(ctx); ok {
			c.Set(ctxActorKey, actor)
		}
		c.Next()
	}
}

func setActor(c *gin.Context, actor shared.Actor) {
	c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), actor))
	c.Set(ctxActorKey, actor)
	c.Set(ctxTenantKey, actor.TenantID)
}

func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

// GetTenantID is set by both RequireAuth and RequireBookingLink.
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxTenantKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
