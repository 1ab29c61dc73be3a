package ports

import (
	"context"
	"time"
)

// TokenDenylist records tokens revoked before their natural expiry. Keys are
// the raw token string; entries expire on their own once the token would
// have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenString string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}
