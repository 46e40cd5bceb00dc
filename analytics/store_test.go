package analytics

import (
	"context"
	"testing"
	"time"
)

// newMemoryStore builds a store that never reaches Redis.
func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(context.Background(), "redis://127.0.0.1:1/0", WithSessionTTL(time.Hour))
	if store.Persistent() {
		t.Skip("local redis unexpectedly reachable")
	}
	return store
}

func TestMemoryStoreSessionRoundTrip(t *testing.T) {
	store := newMemoryStore(t)

	session := SessionAnalytics{SessionID: "session-1", Turns: 4}
	if err := store.SaveSession(context.Background(), session); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	loaded, err := store.GetSession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("expected session to load, got %v", err)
	}
	if loaded.Turns != 4 {
		t.Fatalf("expected stored session returned, got %+v", loaded)
	}

	if _, err := store.GetSession(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestMemoryStoreArchiveMovesSessionToHistory(t *testing.T) {
	store := newMemoryStore(t)

	session := SessionAnalytics{SessionID: "session-1", Turns: 2}
	if err := store.SaveSession(context.Background(), session); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	if err := store.ArchiveSession(context.Background(), session); err != nil {
		t.Fatalf("expected archive to succeed, got %v", err)
	}

	loaded, err := store.GetSession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("expected archived session to load, got %v", err)
	}
	if loaded.Turns != 2 {
		t.Fatalf("expected archived session returned, got %+v", loaded)
	}
}

func TestMemoryStoreProfileRoundTrip(t *testing.T) {
	store := newMemoryStore(t)

	profile := *NewUserProfile("user-1")
	profile.TotalSessions = 3
	if err := store.SaveProfile(context.Background(), profile); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	loaded, err := store.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected profile to load, got %v", err)
	}
	if loaded.TotalSessions != 3 {
		t.Fatalf("expected stored profile returned, got %+v", loaded)
	}

	if _, err := store.GetProfile(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
