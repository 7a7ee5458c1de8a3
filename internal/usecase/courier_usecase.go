package usecase

import (
	"context"

	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/rate"

	"github.com/google/uuid"
)

// CourierUsecase defines courier catalogue management and rate shopping.
type CourierUsecase interface {
	// ListCouriers returns couriers ordered by name. activeOnly hides disabled couriers.
	ListCouriers(ctx context.Context, activeOnly bool) ([]*entity.Courier, error)
	GetCourier(ctx context.Context, id uuid.UUID) (*entity.Courier, error)

	// CreateCourier, UpdateCourier and DeleteCourier are reserved to admins.
	// Fields the draft leaves out take their defaults on create and keep their stored value on update.
	CreateCourier(ctx context.Context, actor entity.Actor, draft entity.CourierDraft) (*entity.Courier, error)
	UpdateCourier(ctx context.Context, actor entity.Actor, id uuid.UUID, draft entity.CourierDraft) (*entity.Courier, error)
	DeleteCourier(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	// Compare quotes the request against every active courier.
	Compare(ctx context.Context, req rate.Request) (*rate.Comparison, error)
	// Recommend ranks every active courier for the request by priority.
	Recommend(ctx context.Context, req rate.Request, priority rate.Priority) ([]rate.ScoredQuote, error)
}
