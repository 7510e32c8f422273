package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "h1", Data{UserID: "u1", Position: "engineer"}, time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Lookup(ctx, "h1")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.UserID != "u1" || got.Position != "engineer" {
		t.Errorf("unexpected session %+v", got)
	}

	if err := store.Revoke(ctx, "h1"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "h", Data{UserID: "u"}, time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	now = now.Add(59 * time.Second)
	if _, err := store.Lookup(ctx, "h"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	now = now.Add(time.Second)
	if _, err := store.Lookup(ctx, "h"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after ttl, got %v", err)
	}
}
