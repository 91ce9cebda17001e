package usecase

import (
	"salon-scheduler/internal/pkg/jwt"
	"salon-scheduler/internal/usecase/shared"
)

// TokenValidator turns an identity-provider token into the caller the
// tenant guard works with.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role, err := shared.ParseRole(claims.Role)
	if err != nil {
		return shared.Actor{}, err
	}

	return shared.Actor{UserID: claims.UserID, TenantID: claims.TenantID, Role: role}, nil
}
