package userstore

import (
	"context"
	"errors"
	"testing"

	authgate "github.com/tokenforge/authgate"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertUser(ctx, "a@b.com", "$argon2id$hash")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if inserted.UserID == "" {
		t.Fatal("insert must assign a user id")
	}

	found, err := store.FindByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserID != inserted.UserID {
		t.Fatalf("user id = %q, want %q", found.UserID, inserted.UserID)
	}
	if found.PasswordHash != "$argon2id$hash" {
		t.Fatalf("password hash = %q", found.PasswordHash)
	}
	if found.CreatedAt.IsZero() {
		t.Fatal("created_at must round-trip")
	}
}

func TestFindUnknownEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindByEmail(context.Background(), "nobody@b.com")
	if !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertUser(ctx, "a@b.com", "hash-1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := store.InsertUser(ctx, "a@b.com", "hash-2")
	if !errors.Is(err, authgate.ErrAccountExists) {
		t.Fatalf("duplicate insert: err = %v, want ErrAccountExists", err)
	}

	// The original record survives the rejected insert.
	found, err := store.FindByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.PasswordHash != "hash-1" {
		t.Fatalf("password hash = %q, want hash-1", found.PasswordHash)
	}
}
