package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/api/metrics"
	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
	"github.com/academicms/portal-api/internal/session"
	"github.com/academicms/portal-api/internal/token"
)

// DemoAccount is the fixed credential pair behind POST /auth/demo-login.
// Disabled entirely when Enabled is false (production).
type DemoAccount struct {
	Email    string
	Password string
	Enabled  bool
}

type AuthHandler struct {
	authService ports.AuthService
	registry    *session.Registry
	activity    ports.ActivitySink
	demo        DemoAccount
}

func NewAuthHandler(authService ports.AuthService, registry *session.Registry, activity ports.ActivitySink, demo DemoAccount) *AuthHandler {
	return &AuthHandler{authService: authService, registry: registry, activity: activity, demo: demo}
}

type registerRequest struct {
	Username        string   `json:"username" validate:"required,min=3"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required,eqfield=Password"`
	ShopNames       []string `json:"shopNames" validate:"required,min=3,unique,dive,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User        *domain.User `json:"user,omitempty"`
	AccessToken string       `json:"accessToken,omitempty"`
}

// Register creates a new account and logs it straight in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration fields"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	signed, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		ShopNames: req.ShopNames,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	h.registry.Put(domain.NewSession(user, signed))
	h.record(user, domain.ActionRegister)

	return c.JSON(http.StatusCreated, authResponse{User: user, AccessToken: signed})
}

// Login authenticates by email and password and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return h.login(c, req.Email, req.Password, domain.ActionLogin)
}

// DemoLogin signs into the seeded demo account. Not registered in
// production.
//
// @Summary      Demo login
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/demo-login [post]
func (h *AuthHandler) DemoLogin(c echo.Context) error {
	if !h.demo.Enabled {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return h.login(c, h.demo.Email, h.demo.Password, domain.ActionDemoLogin)
}

func (h *AuthHandler) login(c echo.Context, email, password, action string) error {
	signed, user, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.registry.Put(domain.NewSession(user, signed))
	h.record(user, action)

	return c.JSON(http.StatusOK, authResponse{User: user, AccessToken: signed})
}

type sessionRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// Session derives the display session from a stored token, the lookup
// clients run on page load before any authenticated call. A malformed token
// is not an error: it just means logged out, so the response carries a null
// user and a 200.
//
// @Summary      Derive session from token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Stored access token"
// @Success      200   {object}  domain.Session
// @Router       /auth/session [post]
func (h *AuthHandler) Session(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, token.DeriveSession(req.AccessToken))
}

// Me returns the caller's current profile from the store.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	fresh, err := h.authService.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fresh)
}

// Logout revokes the presented token and drops the session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	raw, err := ctxToken(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), raw); err != nil {
		return err
	}

	h.registry.Delete(raw)
	h.record(user, domain.ActionLogout)

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) record(user *domain.User, action string) {
	if h.activity == nil {
		return
	}
	h.activity.Enqueue(domain.ActivityEvent{
		UserID:   user.ID,
		Username: user.Username,
		Action:   action,
		At:       time.Now().UTC(),
	})
}

func registerResult(err error) string {
	if errors.Is(err, domain.ErrUserExists) {
		return "conflict"
	}
	return "error"
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	}
	return "error"
}
