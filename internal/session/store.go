package session

import (
	"sync"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// Store is the authenticated identity of one browser session. Login, Logout
// and SetUser are its only mutation entry points.
type Store struct {
	mu            sync.RWMutex
	user          *models.Identity
	token         string
	authenticated bool
	expired       bool
}

// NewStore returns an empty, unauthenticated store
func NewStore() *Store {
	return &Store{}
}

// Login records identity and token. It does not persist anything; callers
// write the cookie mirror with Cookies.Persist.
func (s *Store) Login(identity models.Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &identity
	s.token = token
	s.authenticated = true
	s.expired = false
}

// Logout clears identity and token
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.authenticated = false
	s.expired = false
}

// SetUser replaces the identity. A nil identity marks the store
// unauthenticated but keeps the token.
func (s *Store) SetUser(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == nil {
		s.user = nil
		s.authenticated = false
		return
	}
	copied := *identity
	s.user = &copied
	s.authenticated = true
}

// User returns a copy of the current identity, nil when logged out
func (s *Store) User() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Token returns the bearer token, "" when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether an identity is present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Expired reports whether the token carried an exp claim in the past
func (s *Store) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

func (s *Store) markExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}
