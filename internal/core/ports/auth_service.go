package ports

import (
	"context"

	"github.com/academicms/portal-api/internal/core/domain"
)

// RegisterInput carries the already-validated registration fields. Field
// rules (lengths, shop minimums, uniqueness) are enforced at the API edge
// before the service is called.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	ShopNames []string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, tokenString string) error
	UpdateShopNames(ctx context.Context, userID string, shopNames []string) (*domain.User, error)
}
