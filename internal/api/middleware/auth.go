package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/ports"
)

// principalKey is the echo context key the Auth middleware stores the
// resolved principal under.
const principalKey = "principal"

// Auth resolves the request's bearer token into a principal and injects it
// into the context. A missing header, a non-Bearer scheme, or a token that
// fails validation all yield the anonymous principal rather than an error;
// denying anonymous access is the role middleware's job.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := domain.Anonymous

			if compact, ok := bearerToken(c); ok {
				if identity, err := auth.ValidateAccess(c.Request().Context(), compact); err == nil {
					principal = domain.AuthenticatedPrincipal(identity)
				}
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. A missing
// header or a non-Bearer scheme means "no credential supplied".
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// PrincipalFrom returns the principal stored by the Auth middleware, or the
// anonymous principal when the middleware did not run.
func PrincipalFrom(c echo.Context) domain.Principal {
	if p, ok := c.Get(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous
}
