package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const jwtSecretKey = "educycle_jwt_secret"

// GetJWTSecret retrieves the JWT secret from the backend.
// If no secret exists, it generates one, stores it, and returns it.
// Uses SetNX + re-read to avoid a TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, backend Backend) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	if _, err := backend.SetNX(ctx, jwtSecretKey, candidate); err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	// Always read back (either our write or the existing value).
	secret, ok, err := backend.Get(ctx, jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("querying jwt secret: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("jwt secret missing after store")
	}
	return secret, nil
}
