package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the authenticated *models.User is stored on the echo context
const UserContextKey = "user"

// Resolver maps a raw bearer token to the current user
type Resolver interface {
	Resolve(ctx context.Context, rawToken string) (*models.User, error)
}

// JWTAuthMiddleware resolves the bearer token to a fresh user and stores it in the context.
func JWTAuthMiddleware(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				if models.KindOf(err) == models.KindUnauthenticated {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware, or nil
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(UserContextKey).(*models.User)
	return user
}
