package session

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestRestore_NoFile(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.Restore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}

func TestEstablishRestoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)

	if err := s.Establish("tok-123", "jane@x.com"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if cur := s.Current(); cur == nil || cur.Token != "tok-123" || cur.Email != "jane@x.com" {
		t.Errorf("unexpected current session: %+v", cur)
	}

	// A fresh store sees the persisted session
	restored, err := NewStore(path).Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored == nil || restored.Token != "tok-123" || restored.Email != "jane@x.com" {
		t.Errorf("unexpected restored session: %+v", restored)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Current() != nil {
		t.Error("current should be nil after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed after clear")
	}
}

func TestClear_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Clear(); err != nil {
		t.Fatalf("clearing an empty store should be a no-op, got %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear should also succeed, got %v", err)
	}
}

func TestEstablish_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	s := NewStore(path)
	if err := s.Establish("tok", "a@b.c"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("session file missing: %v", err)
	}
}
