package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/academicms/portal-api/internal/api/middleware"
	"github.com/academicms/portal-api/internal/core/domain"
)

func getWithUser(e *echo.Echo, target string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, user)
	return c, rec
}

func decodeNavigation(t *testing.T, rec *httptest.ResponseRecorder) navigationResponse {
	t.Helper()
	var resp navigationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestMeHandler_Navigation_Admin(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	c, rec := getWithUser(e, "/me/navigation", &domain.User{ID: "1", Role: domain.RoleAdmin})
	if err := h.Navigation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeNavigation(t, rec)
	if resp.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", resp.Role)
	}
	wantPaths := []string{"/admin/dashboard", "/admin/users", "/admin/settings"}
	if len(resp.Entries) != len(wantPaths) {
		t.Fatalf("expected %d entries, got %d", len(wantPaths), len(resp.Entries))
	}
	for i, p := range wantPaths {
		if resp.Entries[i].Path != p {
			t.Fatalf("entry %d: expected path %s, got %s", i, p, resp.Entries[i].Path)
		}
		if resp.Entries[i].Active {
			t.Fatalf("no entry should be active without a path query")
		}
	}
}

// A fresh request with a different role swaps the entry set: role switching
// needs no server-side state beyond the token.
func TestMeHandler_Navigation_RoleSwitch(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	c, rec := getWithUser(e, "/me/navigation", &domain.User{ID: "1", Role: domain.RoleUser})
	if err := h.Navigation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeNavigation(t, rec)
	if len(resp.Entries) != 3 || resp.Entries[1].Path != "/user/shops" {
		t.Fatalf("expected user entry set, got %+v", resp.Entries)
	}
	if resp.Entries[1].Icon != "shopping-basket" {
		t.Fatalf("expected shopping-basket icon, got %q", resp.Entries[1].Icon)
	}
}

func TestMeHandler_Navigation_ActiveEntry(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	c, rec := getWithUser(e, "/me/navigation?path=/admin/users", &domain.User{ID: "1", Role: domain.RoleAdmin})
	if err := h.Navigation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeNavigation(t, rec)
	for i, entry := range resp.Entries {
		wantActive := entry.Path == "/admin/users"
		if entry.Active != wantActive {
			t.Fatalf("entry %d (%s): active=%v", i, entry.Path, entry.Active)
		}
	}
}

func TestMeHandler_Navigation_UnknownRole(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	c, rec := getWithUser(e, "/me/navigation", &domain.User{ID: "1", Role: "superadmin"})
	if err := h.Navigation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown role is not an error, got %d", rec.Code)
	}
	if resp := decodeNavigation(t, rec); len(resp.Entries) != 0 {
		t.Fatalf("expected empty entries, got %+v", resp.Entries)
	}
}

func TestMeHandler_UpdateShops(t *testing.T) {
	e := newEcho()
	sink := &stubSink{}
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, userID string, shopNames []string) (*domain.User, error) {
			if userID != "1" || len(shopNames) != 4 {
				t.Fatalf("unexpected args: %s %v", userID, shopNames)
			}
			return &domain.User{ID: userID, ShopNames: shopNames}, nil
		},
	}
	h := NewMeHandler(stub, sink, "localhost", 5173)

	c, rec := postJSON(e, "/me/shops", `{"shopNames":["alpha","beta","gamma","delta"]}`)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "1", Username: "alice"})

	if err := h.UpdateShops(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sink.events) != 1 || sink.events[0].Action != domain.ActionShopsUpdated {
		t.Fatalf("expected shops_updated event, got %+v", sink.events)
	}
}

// The floor of three shop names holds on update too: shrinking to two is a
// validation failure, the service is never called.
func TestMeHandler_UpdateShops_BelowFloor(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, userID string, shopNames []string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewMeHandler(stub, &stubSink{}, "localhost", 5173)

	c, _ := postJSON(e, "/me/shops", `{"shopNames":["alpha","beta"]}`)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "1"})

	err := h.UpdateShops(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["shopNames"]; !ok || len(ve.Fields) != 1 {
		t.Fatalf("expected one shopNames error, got %v", ve.Fields)
	}
}

func TestMeHandler_ShopRedirect(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	user := &domain.User{ID: "1", ShopNames: []string{"books", "grocery"}}
	c, rec := getWithUser(e, "/shops/books/url", user)
	c.SetParamNames("name")
	c.SetParamValues("books")

	if err := h.ShopRedirect(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "http://books.localhost:5173" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestMeHandler_ShopRedirect_NotOwned(t *testing.T) {
	e := newEcho()
	h := NewMeHandler(&stubAuthService{}, &stubSink{}, "localhost", 5173)

	user := &domain.User{ID: "1", ShopNames: []string{"books"}}
	c, _ := getWithUser(e, "/shops/fashion/url", user)
	c.SetParamNames("name")
	c.SetParamValues("fashion")

	if err := h.ShopRedirect(c); !errors.Is(err, domain.ErrShopNotOwned) {
		t.Fatalf("expected ErrShopNotOwned, got %v", err)
	}
}
