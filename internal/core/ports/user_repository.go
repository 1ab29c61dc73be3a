package ports

import (
	"context"

	"github.com/academicms/portal-api/internal/core/domain"
)

// UserRepository defines the persistence interface for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateShopNames(ctx context.Context, id string, shopNames []string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
