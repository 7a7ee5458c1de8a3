package repository

import (
	"context"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CourierRepository defines persistence operations for couriers.
type CourierRepository interface {
	// ListActive returns active couriers in a stable order (name ascending).
	ListActive(ctx context.Context) ([]*entity.Courier, error)

	// List returns all couriers, active or not, ordered by name.
	List(ctx context.Context) ([]*entity.Courier, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Courier, error)

	// Create persists a courier. Duplicate name or code yields ErrCourierAlreadyExists.
	Create(ctx context.Context, courier *entity.Courier) error

	Update(ctx context.Context, courier *entity.Courier) error

	Delete(ctx context.Context, id uuid.UUID) error
}
