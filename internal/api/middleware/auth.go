package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/api/metrics"
	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
	"github.com/academicms/portal-api/internal/session"
	"github.com/academicms/portal-api/internal/token"
)

// Context keys populated by Auth.
const (
	ContextKeyUser  = "user"
	ContextKeyRole  = "role"
	ContextKeyToken = "token"
)

// Auth verifies the bearer token, rejects revoked tokens, registers the
// session in the registry and injects the user into the request context.
// denylist and registry may be nil (unit tests); both checks are then
// skipped.
func Auth(jwtSecret string, denylist ports.TokenDenylist, registry *session.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			raw := parts[1]

			claims, err := token.Parse(jwtSecret, raw)
			if err != nil {
				metrics.TokenDecodeFailuresTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), raw)
				if err != nil {
					// Redis being down must not 401 the user: that would
					// collapse a backend failure into "logged out".
					metrics.TokenDecodeFailuresTotal.WithLabelValues("denylist_error").Inc()
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session backend unavailable")
				}
				if revoked {
					metrics.TokenDecodeFailuresTotal.WithLabelValues("revoked").Inc()
					return domain.ErrTokenRevoked
				}
			}

			user := claims.User()
			if registry != nil {
				registry.Put(domain.NewSession(user, raw))
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyRole, user.Role)
			c.Set(ContextKeyToken, raw)

			return next(c)
		}
	}
}
