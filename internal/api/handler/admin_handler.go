package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
	"github.com/academicms/portal-api/internal/session"
)

// AdminHandler serves the admin dashboard listings. All routes are behind
// RBAC(admin).
type AdminHandler struct {
	users    ports.UserRepository
	registry *session.Registry
	activity ports.ActivityService
}

func NewAdminHandler(users ports.UserRepository, registry *session.Registry, activity ports.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, registry: registry, activity: activity}
}

// Users lists all accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

type sessionListResponse struct {
	Active   int            `json:"active"`
	Sessions []*domain.User `json:"sessions"`
}

// Sessions lists users with a live session in this process. Tokens are
// never echoed back.
//
// @Summary      List active sessions
// @Tags         admin
// @Produce      json
// @Success      200  {object}  sessionListResponse
// @Router       /admin/sessions [get]
func (h *AdminHandler) Sessions(c echo.Context) error {
	snapshot := h.registry.Snapshot()
	resp := sessionListResponse{Active: len(snapshot), Sessions: make([]*domain.User, 0, len(snapshot))}
	for _, s := range snapshot {
		resp.Sessions = append(resp.Sessions, s.User)
	}
	return c.JSON(http.StatusOK, resp)
}

// Activity lists recent auth activity events, newest first.
//
// @Summary      Recent auth activity
// @Tags         admin
// @Produce      json
// @Param        limit  query    int  false  "Maximum events to return"
// @Success      200    {array}  domain.ActivityEvent
// @Router       /admin/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
