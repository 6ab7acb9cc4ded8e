package ports

import (
	"context"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

// UserRepository defines persistence for user records. Find results are
// ordered by role ascending. Lookups return domain.ErrUserNotFound when no
// record matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Find(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) (*domain.User, error)
}
