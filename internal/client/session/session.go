// Package session holds the client's authenticated session: the bearer
// token and the email it was issued for, persisted to disk so a restarted
// client stays logged in.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Session is the persisted credential state.
type Session struct {
	// Token is the opaque bearer credential returned by login.
	Token string `json:"token"`
	// Email labels the account the token belongs to.
	Email string `json:"email"`
}

// Store persists at most one Session to a JSON file. Token and email are
// written and erased together. The zero value is not usable; call NewStore.
type Store struct {
	path    string
	mu      sync.Mutex
	current *Session
}

// DefaultPath returns the session file location under the user config
// directory, falling back to the working directory if it is unavailable.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "notesia", "session.json")
}

// NewStore creates a Store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Restore loads the persisted session, if any. A missing file means
// unauthenticated and returns (nil, nil).
func (s *Store) Restore() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var sess Session
	if err := json.NewDecoder(f).Decode(&sess); err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, nil
	}
	s.current = &sess
	return &sess, nil
}

// Establish stores the token and email in memory and on disk.
func (s *Store) Establish(token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	sess := Session{Token: token, Email: email}
	if err := json.NewEncoder(f).Encode(&sess); err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// Clear erases the in-memory and persisted session. Clearing an already
// empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Current returns the in-memory session, or nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
