package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
)

// MeHandler serves the session-derived surface: navigation for the caller's
// role, the shop shortcut redirect, and shop list updates.
type MeHandler struct {
	authService ports.AuthService
	activity    ports.ActivitySink
	appHost     string
	appPort     int
}

func NewMeHandler(authService ports.AuthService, activity ports.ActivitySink, appHost string, appPort int) *MeHandler {
	return &MeHandler{authService: authService, activity: activity, appHost: appHost, appPort: appPort}
}

type navigationEntry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

type navigationResponse struct {
	Role    domain.Role       `json:"role"`
	Entries []navigationEntry `json:"entries"`
}

// Navigation returns the sidebar entries for the caller's role, in render
// order. The optional path query marks the matching entry active.
//
// @Summary      Role navigation
// @Tags         me
// @Produce      json
// @Param        path  query     string  false  "Current location path"
// @Success      200   {object}  navigationResponse
// @Failure      401   {object}  map[string]string
// @Router       /me/navigation [get]
func (h *MeHandler) Navigation(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	current := c.QueryParam("path")
	entries := domain.NavigationFor(user.Role)

	resp := navigationResponse{Role: user.Role, Entries: make([]navigationEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, navigationEntry{
			Name:   e.Name,
			Path:   e.Path,
			Icon:   e.Icon,
			Active: current != "" && current == e.Path,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type updateShopsRequest struct {
	ShopNames []string `json:"shopNames" validate:"required,min=3,unique,dive,min=2"`
}

// UpdateShops replaces the caller's shop list wholesale. The same floor of
// three unique names applies as at registration, so the list can never
// shrink below it.
//
// @Summary      Update shop names
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        body  body      updateShopsRequest  true  "Replacement shop list"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /me/shops [patch]
func (h *MeHandler) UpdateShops(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateShopsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.authService.UpdateShopNames(c.Request().Context(), user.ID, req.ShopNames)
	if err != nil {
		return err
	}

	if h.activity != nil {
		h.activity.Enqueue(domain.ActivityEvent{
			UserID:   user.ID,
			Username: user.Username,
			Action:   domain.ActionShopsUpdated,
			At:       time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, updated)
}

// ShopRedirect sends the caller to a shop's storefront subdomain. Only the
// caller's own shops resolve; anything else is forbidden.
//
// @Summary      Shop shortcut redirect
// @Tags         me
// @Param        name  path  string  true  "Shop name"
// @Success      307
// @Failure      403  {object}  map[string]string
// @Router       /shops/{name}/url [get]
func (h *MeHandler) ShopRedirect(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	name := c.Param("name")
	if !user.OwnsShop(name) {
		return domain.ErrShopNotOwned
	}

	return c.Redirect(http.StatusTemporaryRedirect, domain.ShopURL(name, h.appHost, h.appPort))
}
