// Package session holds the in-process registry of live sessions. Every read
// and write is a whole-value replacement of a domain.Session, so observers
// can never see a user without its token or vice versa.
package session

import (
	"sync"

	"github.com/academicms/portal-api/internal/core/domain"
)

// Listener is notified with the registry size after every mutation.
type Listener func(active int)

// Registry is a concurrency-safe token → session map. The zero value is not
// usable; construct with NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]domain.Session
	listeners []Listener
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]domain.Session)}
}

// Get returns the session registered under token. The zero session means
// logged out; callers can distinguish with Session.Active.
func (r *Registry) Get(token string) domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[token]
}

// Put registers a live session under its token. Inactive sessions are
// ignored; there is nothing meaningful to index them by.
func (r *Registry) Put(s domain.Session) {
	if !s.Active() {
		return
	}
	r.mu.Lock()
	r.sessions[s.Token] = s
	n := len(r.sessions)
	listeners := r.listeners
	r.mu.Unlock()

	for _, l := range listeners {
		l(n)
	}
}

// Delete removes the session for token, if any. Reads after Delete yield the
// zero (logged out) session.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	_, existed := r.sessions[token]
	delete(r.sessions, token)
	n := len(r.sessions)
	listeners := r.listeners
	r.mu.Unlock()

	if existed {
		for _, l := range listeners {
			l(n)
		}
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns a copy of all live sessions. Order is unspecified.
func (r *Registry) Snapshot() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// OnChange registers a listener invoked after every Put and effective
// Delete. Register listeners before the registry sees traffic; registration
// is not safe to interleave with lookups on hot paths.
func (r *Registry) OnChange(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}
