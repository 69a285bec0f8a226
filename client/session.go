package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitpulse/athlete-tracker/models"
)

// Identity is the authenticated user held for the lifetime of a login,
// persisted locally so the session survives restarts.
type Identity struct {
	ID    int             `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
	Token string          `json:"token"`
}

// SessionStore keeps the current identity in memory and mirrors it to a
// JSON file. A missing or corrupt file means "no session", never an error.
type SessionStore struct {
	mu       sync.RWMutex
	path     string
	identity *Identity
	loading  bool
}

// NewSessionStore rehydrates the session from path. A malformed stored
// value is discarded and the store starts unauthenticated.
func NewSessionStore(path string) *SessionStore {
	s := &SessionStore{path: path, loading: true}
	s.restore()
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	return s
}

// DefaultSessionPath is $HOME/.athlete-tracker/session.json.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".athlete-tracker", "session.json")
	}
	return filepath.Join(home, ".athlete-tracker", "session.json")
}

func (s *SessionStore) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil || identity.Token == "" || !identity.Role.Valid() {
		// Corrupt or stale format: drop it and proceed unauthenticated.
		_ = os.Remove(s.path)
		return
	}

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()
}

// Loading reports whether the initial rehydration is still in progress.
// It is never true again after the store has been constructed.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Current returns a copy of the identity and whether one is set.
func (s *SessionStore) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *SessionStore) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *SessionStore) IsCoach() bool {
	identity, ok := s.Current()
	return ok && identity.Role == models.RoleCoach
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *SessionStore) Token() string {
	identity, ok := s.Current()
	if !ok {
		return ""
	}
	return identity.Token
}

// set stores the identity in memory and on disk. The file write failing
// does not fail the login: the in-memory session is still valid, it just
// will not survive a restart.
func (s *SessionStore) set(identity Identity) error {
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear drops the in-memory identity and removes the persisted file.
// It never fails: a missing file is already the desired state, and a
// stale file that cannot be removed is re-validated by restore anyway.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	_ = os.Remove(s.path)
}
