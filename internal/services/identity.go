// Package services holds the business rules: identity, authorization, fan-out,
// reactions, the follow graph and feed composition.
package services

import (
	"context"
	"errors"

	"github.com/anonto42/careerpulse/backend/internal/auth"
	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

// TokenValidator returns the subject of a valid token
type TokenValidator interface {
	Validate(token string) (string, error)
}

// IdentityResolver turns a bearer token into the current user, re-read from the store
type IdentityResolver struct {
	tokens TokenValidator
	users  repositories.UserRepository
}

func NewIdentityResolver(tokens TokenValidator, users repositories.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve fails with Unauthenticated when the token is missing, malformed, expired
// or names a user that no longer exists.
func (r *IdentityResolver) Resolve(ctx context.Context, rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, models.NewUnauthenticatedError("Not authenticated")
	}
	userID, err := r.tokens.Validate(rawToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, models.NewUnauthenticatedError("Token expired")
		}
		return nil, models.NewUnauthenticatedError("Invalid token")
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if models.KindOf(err) == models.KindNotFound {
			return nil, models.NewUnauthenticatedError("User not found")
		}
		return nil, err
	}
	return user, nil
}
