package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/educycle/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	backend := NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	// Token should not be revoked initially.
	revoked, err := IsTokenRevoked(ctx, backend, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected token not to be revoked")
	}

	if err := RevokeToken(ctx, backend, "test-jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, backend, "test-jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}

	// Different JTI should not be revoked.
	revoked, _ = IsTokenRevoked(ctx, backend, "test-jti-2")
	if revoked {
		t.Error("expected different token not to be revoked")
	}
}

func TestRevokeTokenIdempotent(t *testing.T) {
	backend := NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	exp := time.Now().Add(time.Hour)
	if err := RevokeToken(ctx, backend, "jti", exp); err != nil {
		t.Fatalf("first RevokeToken: %v", err)
	}
	if err := RevokeToken(ctx, backend, "jti", exp); err != nil {
		t.Fatalf("second RevokeToken: %v", err)
	}
}

func TestExpiredRevocationIsCleanedUp(t *testing.T) {
	backend := NewSQLite(db.NewTestDB(t))
	ctx := context.Background()

	RevokeToken(ctx, backend, "old", time.Now().Add(-time.Hour))

	revoked, err := IsTokenRevoked(ctx, backend, "old")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected expired token to still report revoked")
	}
	if _, ok, _ := backend.Get(ctx, revokedKeyPrefix+"old"); ok {
		t.Error("expected expired revocation entry to be removed")
	}
}
