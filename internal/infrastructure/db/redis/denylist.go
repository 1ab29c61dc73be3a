package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records tokens revoked by logout. Entries carry a TTL equal
// to the token's remaining lifetime, so the set cleans itself up.
// Key format: revoked:<sha256 of token>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token as invalid for ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenString string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(tokenString), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was invalidated by a logout.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenString)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// key hashes the token so raw credentials never land in Redis.
func (d *TokenDenylist) key(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return "revoked:" + hex.EncodeToString(sum[:])
}
