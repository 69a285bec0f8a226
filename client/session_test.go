package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fitpulse/athlete-tracker/models"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSessionRehydratesFromDisk(t *testing.T) {
	path := sessionPath(t)

	first := NewSessionStore(path)
	err := first.set(Identity{ID: 1, Email: "c@x.com", Name: "Coach", Role: models.RoleCoach, Token: "tok-1"})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	second := NewSessionStore(path)
	identity, ok := second.Current()
	if !ok {
		t.Fatal("expected rehydrated session")
	}
	if identity.Token != "tok-1" || identity.Role != models.RoleCoach {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !second.IsCoach() {
		t.Fatal("expected IsCoach for coach role")
	}
	if second.Loading() {
		t.Fatal("Loading must be false after construction")
	}
}

func TestSessionDiscardsCorruptFile(t *testing.T) {
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewSessionStore(path)
	if store.IsAuthenticated() {
		t.Fatal("corrupt session file must mean no session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt session file should have been removed")
	}
}

func TestSessionDiscardsWrongShape(t *testing.T) {
	path := sessionPath(t)
	// Valid JSON, but no token: treated as no session.
	if err := os.WriteFile(path, []byte(`{"id":1,"role":"coach"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewSessionStore(path)
	if store.IsAuthenticated() {
		t.Fatal("tokenless session file must mean no session")
	}
}

func TestSessionMissingFileMeansLoggedOut(t *testing.T) {
	store := NewSessionStore(sessionPath(t))
	if store.IsAuthenticated() {
		t.Fatal("expected unauthenticated store")
	}
	if store.Token() != "" {
		t.Fatal("expected empty token")
	}
	if store.IsCoach() {
		t.Fatal("unauthenticated store cannot be coach")
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := sessionPath(t)
	store := NewSessionStore(path)
	if err := store.set(Identity{ID: 2, Role: models.RoleViewer, Token: "tok"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	store.Clear()

	if store.IsAuthenticated() {
		t.Fatal("Clear must drop the in-memory identity")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Clear must remove the persisted file")
	}
}
