// Package token mints and reads the portal's HS256 bearer tokens. The token
// payload carries a full user snapshot so clients can derive the session
// (role, shops, timestamps) without a second round trip.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/academicms/portal-api/internal/core/domain"
)

// Claims is the portal token payload.
type Claims struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ShopNames []string    `json:"shopNames,omitempty"`
	CreatedAt int64       `json:"createdAt,omitempty"`
	UpdatedAt int64       `json:"updatedAt,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs an HS256 token for user valid for ttl.
func Mint(secret string, ttl time.Duration, user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ShopNames: user.ShopNames,
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the claims. Only HS256 is
// accepted; anything else fails as a signature error.
func Parse(secret, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Decode extracts the user snapshot from a token WITHOUT verifying the
// signature or expiry. It exists for display and routing decisions only —
// which sidebar to show — and is never a trust boundary; anything that
// grants access goes through Parse. Malformed input returns an error.
func Decode(tokenString string) (*domain.User, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, err
	}
	return claims.User(), nil
}

// DeriveSession is the single boundary turning a raw token into a session.
// Malformed or unparseable input yields the zero (logged out) session, never
// an error: a bad token means "no session", matching how the rest of the
// system treats missing credentials.
func DeriveSession(tokenString string) domain.Session {
	user, err := Decode(tokenString)
	if err != nil {
		return domain.Session{}
	}
	return domain.NewSession(user, tokenString)
}

// User rebuilds the domain user embedded in the claims.
func (c *Claims) User() *domain.User {
	return &domain.User{
		ID:        c.Subject,
		Username:  c.Username,
		Email:     c.Email,
		Role:      c.Role,
		ShopNames: c.ShopNames,
		CreatedAt: unixToTime(c.CreatedAt),
		UpdatedAt: unixToTime(c.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
