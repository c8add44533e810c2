package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Options configures the store. Zero values fall back to the defaults used
// in tests.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	CookieName      string
	CookieSecure    bool
}

const (
	defaultTTL             = 30 * time.Minute
	defaultCleanupInterval = 5 * time.Minute
	defaultCookieName      = "billfold_session"
)

type entry struct {
	state     *State
	expiresAt time.Time
}

// Store maps session IDs to live State aggregates. The browser cookie
// carries only the opaque ID; the TTL slides on every access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	ttl             time.Duration
	cleanupInterval time.Duration
	cookieName      string
	cookieSecure    bool
}

func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	return &Store{
		sessions:        make(map[string]*entry),
		ttl:             opts.TTL,
		cleanupInterval: opts.CleanupInterval,
		cookieName:      opts.CookieName,
		cookieSecure:    opts.CookieSecure,
	}
}

// Load resolves the request's session, creating a fresh one (and setting the
// cookie) when the request carries no cookie, an unknown ID, or an expired
// one. An expired session is indistinguishable from no session at all.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *State {
	now := time.Now()

	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		s.mu.Lock()
		if e, ok := s.sessions[c.Value]; ok && now.Before(e.expiresAt) {
			e.expiresAt = now.Add(s.ttl)
			st := e.state
			s.mu.Unlock()
			return st
		}
		s.mu.Unlock()
	}

	id := uuid.NewString()
	st := NewState()
	s.mu.Lock()
	s.sessions[id] = &entry{state: st, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookieSecure,
	})
	return st
}

// Len reports the number of live sessions, expired entries included until
// the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanExpired removes all expired sessions and returns how many went.
func (s *Store) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Janitor sweeps expired sessions on the configured interval until ctx is
// cancelled.
func (s *Store) Janitor(ctx context.Context) error {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.CleanExpired(); n > 0 {
				slog.Debug("Session cleanup completed", "sessions_removed", n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
