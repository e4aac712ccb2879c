package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where the authenticated *models.User is stored.
const UserContextKey = "user"

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWTAuthMiddleware checks for a valid bearer token and loads its user.
func JWTAuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			user, err := auth.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				var ae *apperr.Error
				if errors.As(err, &ae) && ae.Kind != apperr.KindInternal {
					return echo.NewHTTPError(ae.Kind.HTTPStatus(), ae.Message)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user placed by JWTAuthMiddleware, or nil.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(UserContextKey).(*models.User)
	return u
}
