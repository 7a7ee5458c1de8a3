package impl

import (
	"context"
	"log/slog"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/rate"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

// courierService implements the CourierUsecase interface.
type courierService struct {
	courierRepo repository.CourierRepository
	audit       usecase.AuditRecorder
	clock       clockz.Clock
	logger      *slog.Logger
}

// CourierServiceParams holds dependencies for CourierService, injected by Fx.
type CourierServiceParams struct {
	fx.In

	CourierRepo repository.CourierRepository
	Audit       usecase.AuditRecorder
	Clock       clockz.Clock
	Logger      *slog.Logger
}

// NewCourierService is the constructor for courierService.
func NewCourierService(params CourierServiceParams) usecase.CourierUsecase {
	return &courierService{
		courierRepo: params.CourierRepo,
		audit:       params.Audit,
		clock:       params.Clock,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *courierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *courierService) ListCouriers(ctx context.Context, activeOnly bool) ([]*entity.Courier, error) {
	var (
		couriers []*entity.Courier
		err      error
	)
	if activeOnly {
		couriers, err = srv.courierRepo.ListActive(ctx)
	} else {
		couriers, err = srv.courierRepo.List(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list couriers")
	}

	return couriers, nil
}

func (srv *courierService) GetCourier(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	courier, err := srv.courierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find courier")
	}

	return courier, nil
}

func (srv *courierService) CreateCourier(ctx context.Context, actor entity.Actor, draft entity.CourierDraft) (*entity.Courier, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WithDetails("only admins may manage couriers")
	}
	courier := draft.Resolve(nil)
	if err := validateCourier(courier); err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	courier.ID = uuid.Nil
	courier.CreatedAt = now
	courier.UpdatedAt = now
	if err := srv.courierRepo.Create(ctx, courier); err != nil {
		return nil, errors.Wrap(err, "failed to create courier")
	}

	srv.log(ctx).Info("Courier created", slog.String("courierID", courier.ID.String()), slog.String("code", courier.Code))
	srv.audit.Record(ctx, actorLog(actor, entity.ActionCreate, entity.ModuleCourier, "Courier created: "+courier.Name))

	return courier, nil
}

func (srv *courierService) UpdateCourier(ctx context.Context, actor entity.Actor, id uuid.UUID, draft entity.CourierDraft) (*entity.Courier, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WithDetails("only admins may manage couriers")
	}

	existing, err := srv.courierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find courier")
	}

	courier := draft.Resolve(existing)
	if err := validateCourier(courier); err != nil {
		return nil, err
	}
	courier.UpdatedAt = srv.clock.Now()

	if err := srv.courierRepo.Update(ctx, courier); err != nil {
		return nil, errors.Wrap(err, "failed to update courier")
	}

	srv.audit.Record(ctx, actorLog(actor, entity.ActionUpdate, entity.ModuleCourier, "Courier updated: "+courier.Name))

	return courier, nil
}

func (srv *courierService) DeleteCourier(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("only admins may manage couriers")
	}

	courier, err := srv.courierRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to find courier")
	}
	if err := srv.courierRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete courier")
	}

	srv.log(ctx).Info("Courier deleted", slog.String("courierID", id.String()))
	srv.audit.Record(ctx, actorLog(actor, entity.ActionDelete, entity.ModuleCourier, "Courier deleted: "+courier.Name))

	return nil
}

// Compare reads the active couriers on every call. Quotes are never cached.
func (srv *courierService) Compare(ctx context.Context, req rate.Request) (*rate.Comparison, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	couriers, err := srv.courierRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active couriers")
	}

	comparison, err := rate.Compare(req, couriers, srv.clock.Now())
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Rates compared", slog.Float64("weight", req.WeightKg), slog.Int("quotes", len(comparison.Quotes)))

	return comparison, nil
}

// Recommend prices a 1 kg parcel when no weight is given.
func (srv *courierService) Recommend(ctx context.Context, req rate.Request, priority rate.Priority) ([]rate.ScoredQuote, error) {
	couriers, err := srv.courierRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active couriers")
	}

	return rate.Recommend(req, priority, couriers, srv.clock.Now())
}

func validateCourier(courier *entity.Courier) error {
	switch {
	case courier.Name == "":
		return domainerrors.ErrInvalidInput.WithDetails("courier name is required")
	case courier.Code == "":
		return domainerrors.ErrInvalidInput.WithDetails("courier code is required")
	case courier.Pricing.BaseRate < 0 || courier.Pricing.WeightRate < 0:
		return domainerrors.ErrInvalidInput.WithDetails("courier rates cannot be negative")
	case courier.Pricing.ExpressMultiplier < 0 || courier.Pricing.OvernightMultiplier < 0:
		return domainerrors.ErrInvalidInput.WithDetails("service multipliers cannot be negative")
	case courier.Pricing.CODCharges < 0 || courier.Pricing.FuelSurcharge < 0:
		return domainerrors.ErrInvalidInput.WithDetails("courier surcharges cannot be negative")
	}

	return nil
}
