package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/api/middleware"
	"github.com/academicms/portal-api/internal/core/domain"
)

// ctxUser extracts the user injected by the Auth middleware. Its presence
// proves the middleware ran; a missing user on a protected route is a wiring
// bug surfaced as 401 rather than a panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// ctxToken extracts the raw bearer token the Auth middleware validated.
func ctxToken(c echo.Context) (string, error) {
	raw, _ := c.Get(middleware.ContextKeyToken).(string)
	if raw == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return raw, nil
}
