package ports

import (
	"context"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

// WardRepository defines persistence for ward records.
type WardRepository interface {
	Create(ctx context.Context, ward *domain.Ward) (*domain.Ward, error)
	FindAll(ctx context.Context) ([]domain.Ward, error)
	FindByID(ctx context.Context, id string) (*domain.Ward, error)
	Update(ctx context.Context, ward *domain.Ward) (*domain.Ward, error)
	Delete(ctx context.Context, id string) (*domain.Ward, error)
}
