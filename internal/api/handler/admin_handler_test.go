package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/session"
)

type stubUserLister struct {
	users []*domain.User
}

func (s *stubUserLister) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, nil
}
func (s *stubUserLister) FindByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLister) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLister) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLister) UpdateShopNames(_ context.Context, _ string, _ []string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserLister) List(_ context.Context) ([]*domain.User, error) {
	return s.users, nil
}

type stubActivityQuery struct {
	lastLimit int
	events    []domain.ActivityEvent
}

func (s *stubActivityQuery) Process(_ context.Context, _ domain.ActivityEvent) error { return nil }
func (s *stubActivityQuery) Recent(_ context.Context, limit int) ([]domain.ActivityEvent, error) {
	s.lastLimit = limit
	return s.events, nil
}

func TestAdminHandler_Users(t *testing.T) {
	e := newEcho()
	users := &stubUserLister{users: []*domain.User{
		{ID: "1", Username: "alice", Role: domain.RoleAdmin},
		{ID: "2", Username: "bob", Role: domain.RoleUser},
	}}
	h := NewAdminHandler(users, session.NewRegistry(), &stubActivityQuery{})

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Users(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice") || !strings.Contains(rec.Body.String(), "bob") {
		t.Fatalf("expected both users in body: %s", rec.Body.String())
	}
}

func TestAdminHandler_Sessions_NoTokenLeak(t *testing.T) {
	e := newEcho()
	registry := session.NewRegistry()
	registry.Put(domain.NewSession(&domain.User{ID: "1", Username: "alice"}, "super-secret-token"))
	h := NewAdminHandler(&stubUserLister{}, registry, &stubActivityQuery{})

	req := httptest.NewRequest(http.MethodGet, "/admin/sessions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Sessions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["active"] != float64(1) {
		t.Fatalf("expected 1 active session, got %v", resp["active"])
	}
	if strings.Contains(rec.Body.String(), "super-secret-token") {
		t.Fatalf("token must not be serialized: %s", rec.Body.String())
	}
}

func TestAdminHandler_Activity(t *testing.T) {
	e := newEcho()
	activity := &stubActivityQuery{events: []domain.ActivityEvent{
		{Username: "alice", Action: domain.ActionLogin, At: time.Unix(1700000000, 0).UTC()},
	}}
	h := NewAdminHandler(&stubUserLister{}, session.NewRegistry(), activity)

	req := httptest.NewRequest(http.MethodGet, "/admin/activity?limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if activity.lastLimit != 10 {
		t.Fatalf("expected limit 10, got %d", activity.lastLimit)
	}
	if !strings.Contains(rec.Body.String(), domain.ActionLogin) {
		t.Fatalf("expected login event in body: %s", rec.Body.String())
	}
}
