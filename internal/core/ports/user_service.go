package ports

import (
	"context"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

type CreateUserInput struct {
	Username     string
	PasswordHash string
	Display      string
	Role         domain.Role
	Pic          string
	WardID       string
}

// UpdateUserInput carries partial updates; nil fields are left untouched.
type UpdateUserInput struct {
	Display *string
	Role    *domain.Role
	WardID  *string
	Pic     *string
}

// UserService is the cached, role-filtered directory over user records.
// Single-record lookups return (nil, nil) when the user does not exist.
type UserService interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context, caller domain.Claims) ([]domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput, image *ImageUpload) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, username, passwordHash string) error
	Remove(ctx context.Context, id string) (*domain.User, error)
}
