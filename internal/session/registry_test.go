package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/academicms/portal-api/internal/core/domain"
)

func testSession(token string, role domain.Role) domain.Session {
	return domain.NewSession(&domain.User{ID: "1", Username: "alice", Role: role}, token)
}

func TestRegistry_PutGetDelete(t *testing.T) {
	r := NewRegistry()

	r.Put(testSession("tok", domain.RoleAdmin))
	got := r.Get("tok")
	if !got.Active() || got.User.Username != "alice" {
		t.Fatalf("unexpected session: %+v", got)
	}

	r.Delete("tok")
	got = r.Get("tok")
	if got.Active() || got.User != nil || got.Token != "" {
		t.Fatalf("expected zero session after delete, got %+v", got)
	}
}

func TestRegistry_PutIgnoresInactive(t *testing.T) {
	r := NewRegistry()
	r.Put(domain.Session{})
	if r.Len() != 0 {
		t.Fatalf("inactive session must not be registered")
	}
}

func TestRegistry_PutReplacesWholeValue(t *testing.T) {
	r := NewRegistry()
	r.Put(testSession("tok", domain.RoleAdmin))
	r.Put(testSession("tok", domain.RoleUser))

	if r.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", r.Len())
	}
	if got := r.Get("tok"); got.User.Role != domain.RoleUser {
		t.Fatalf("expected replacement, got role %q", got.User.Role)
	}
}

func TestRegistry_OnChange(t *testing.T) {
	r := NewRegistry()

	var counts []int
	r.OnChange(func(active int) { counts = append(counts, active) })

	r.Put(testSession("a", domain.RoleUser))
	r.Put(testSession("b", domain.RoleUser))
	r.Delete("a")
	r.Delete("missing") // no-op, must not notify

	want := []int{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("notification %d: expected %d, got %d", i, want[i], counts[i])
		}
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Put(testSession("a", domain.RoleUser))
	r.Put(testSession("b", domain.RoleAdmin))

	snapshot := r.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(snapshot))
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", i)
			r.Put(testSession(tok, domain.RoleUser))
			_ = r.Get(tok)
			if i%2 == 0 {
				r.Delete(tok)
			}
		}(i)
	}
	wg.Wait()

	if r.Len() != 16 {
		t.Fatalf("expected 16 sessions, got %d", r.Len())
	}
}
