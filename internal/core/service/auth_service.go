package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/academicms/portal-api/internal/core/domain"
	"github.com/academicms/portal-api/internal/core/ports"
	"github.com/academicms/portal-api/internal/token"
)

// AuthService implements registration, login, profile lookup, shop updates
// and logout (token revocation).
type AuthService struct {
	repo      ports.UserRepository
	denylist  ports.TokenDenylist
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, denylist ports.TokenDenylist, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, denylist: denylist, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account with the user role and returns a freshly
// minted token alongside it, so registration logs the caller straight in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		ShopNames:    in.ShopNames,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	signed, err := token.Mint(s.jwtSecret, s.tokenTTL, created)
	if err != nil {
		return "", nil, err
	}
	return signed, created, nil
}

// Login authenticates by email and password and returns a signed token plus
// the user record the token snapshots.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Mint(s.jwtSecret, s.tokenTTL, user)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// Me returns the current profile from the store. The token snapshot can be
// stale after a shop update; this is the fresh read the dashboard header
// uses.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Logout revokes the presented token for the remainder of its lifetime.
// Already-expired or unparseable tokens are a no-op: there is nothing left
// to revoke.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := token.Parse(s.jwtSecret, tokenString)
	if err != nil {
		return nil
	}

	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, tokenString, ttl)
}

// UpdateShopNames replaces the user's shop list wholesale. Field rules are
// enforced at the API edge; the service only guards against the empty case.
func (s *AuthService) UpdateShopNames(ctx context.Context, userID string, shopNames []string) (*domain.User, error) {
	if len(shopNames) == 0 {
		return nil, domain.ErrInvalidCredentials
	}
	return s.repo.UpdateShopNames(ctx, userID, shopNames)
}

// IsRevoked reports whether a token was invalidated by logout. Exposed for
// the auth middleware.
func (s *AuthService) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	return s.denylist.IsRevoked(ctx, tokenString)
}
