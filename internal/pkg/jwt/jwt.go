// Package jwt verifies the HS256 identity tokens issued for salon staff.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Tolerated clock drift between this service and the identity provider.
const leeway = 30 * time.Second

// Claims as issued by the identity provider. TenantID binds the caller to
// exactly one business.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) bound() bool {
	return c.UserID != uuid.Nil && c.TenantID != uuid.Nil && c.Role != ""
}

type Service struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewService(secret, issuer string) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Service{secret: []byte(secret), issuer: issuer, parser: jwt.NewParser(opts...)}
}

// GenerateToken signs a token the way the identity provider does. Only
// tests and local tooling call it.
func (s *Service) GenerateToken(userID, tenantID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(s.secret)
}

func (s *Service) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case !claims.bound():
		return nil, ErrInvalidToken
	}
	return claims, nil
}
