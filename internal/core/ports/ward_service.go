package ports

import (
	"context"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

type CreateWardInput struct {
	Name       string
	Type       string
	HospitalID string
}

type UpdateWardInput struct {
	Name *string
	Type *string
}

type WardService interface {
	Create(ctx context.Context, in CreateWardInput) (*domain.Ward, error)
	FindAll(ctx context.Context) ([]domain.Ward, error)
	FindByID(ctx context.Context, id string) (*domain.Ward, error)
	Update(ctx context.Context, id string, in UpdateWardInput) (*domain.Ward, error)
	Remove(ctx context.Context, id string) (*domain.Ward, error)
}
