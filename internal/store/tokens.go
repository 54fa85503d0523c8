package store

import (
	"context"
	"fmt"
	"time"
)

const revokedKeyPrefix = "educycle_revoked_"

// RevokeToken adds a token's JTI to the revocation list. The entry records
// the token's expiry so it can be ignored once the token is dead anyway.
func RevokeToken(ctx context.Context, backend Backend, jti string, expiresAt time.Time) error {
	if _, err := backend.SetNX(ctx, revokedKeyPrefix+jti, expiresAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, backend Backend, jti string) (bool, error) {
	value, ok, err := backend.Get(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	if !ok {
		return false, nil
	}

	expiresAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Unreadable entries stay revoked.
		return true, nil
	}
	if time.Now().After(expiresAt) {
		_ = backend.Delete(ctx, revokedKeyPrefix+jti)
	}
	return true, nil
}
