package store

import (
	"context"
	"testing"

	"github.com/erazemk/educycle/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	backend := NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, backend)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, backend)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestGetJWTSecret_Redis(t *testing.T) {
	backend, _ := newRedisBackend(t)
	ctx := context.Background()

	secret1, err := GetJWTSecret(ctx, backend)
	if err != nil {
		t.Fatal(err)
	}
	secret2, _ := GetJWTSecret(ctx, backend)
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}
