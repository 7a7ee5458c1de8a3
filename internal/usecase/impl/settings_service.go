package impl

import (
	"context"
	"log/slog"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	userRepo     repository.UserRepository
	shipmentRepo repository.ShipmentRepository
	audit        usecase.AuditRecorder
	clock        clockz.Clock
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for SettingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	ShipmentRepo repository.ShipmentRepository
	Audit        usecase.AuditRecorder
	Clock        clockz.Clock
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		userRepo:     params.UserRepo,
		shipmentRepo: params.ShipmentRepo,
		audit:        params.Audit,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *settingsService) GetSettings(ctx context.Context, actor entity.Actor, cached *entity.Settings) (entity.Settings, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return entity.Settings{}, errors.Wrap(err, "failed to find user")
	}

	return entity.ResolveSettings(user.Settings, cached), nil
}

// UpdateSettings patches the effective settings and stores the full result.
func (srv *settingsService) UpdateSettings(ctx context.Context, actor entity.Actor, patch entity.SettingsPatch) (entity.Settings, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return entity.Settings{}, errors.Wrap(err, "failed to find user")
	}

	settings := patch.Apply(entity.ResolveSettings(user.Settings, nil))
	if err := srv.userRepo.UpdateSettings(ctx, actor.UserID, settings); err != nil {
		return entity.Settings{}, errors.Wrap(err, "failed to update settings")
	}

	srv.audit.Record(ctx, actorLog(actor, entity.ActionUpdate, entity.ModuleSettings, "User updated their settings"))

	return settings, nil
}

func (srv *settingsService) ResetSettings(ctx context.Context, actor entity.Actor) (entity.Settings, error) {
	settings := entity.DefaultSettings()
	if err := srv.userRepo.UpdateSettings(ctx, actor.UserID, settings); err != nil {
		return entity.Settings{}, errors.Wrap(err, "failed to reset settings")
	}

	srv.log(ctx).Debug("Settings reset", slog.String("userID", actor.UserID.String()))

	return settings, nil
}

// ExportData collects the actor's own shipments, whatever their role.
func (srv *settingsService) ExportData(ctx context.Context, actor entity.Actor) (*usecase.DataExport, error) {
	user, err := srv.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	userID := actor.UserID
	shipments, err := srv.shipmentRepo.ListForAnalytics(ctx, entity.ShipmentFilter{UserID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}

	export := &usecase.DataExport{
		Name:       user.Name,
		Email:      user.Email,
		Company:    user.Company,
		ExportedAt: srv.clock.Now(),
		Shipments:  make([]usecase.ExportedShipment, 0, len(shipments)),
	}
	for _, s := range shipments {
		export.Statistics.TotalShipments++
		switch s.Status {
		case entity.StatusDelivered:
			export.Statistics.Delivered++
		case entity.StatusPending:
			export.Statistics.Pending++
		}
		export.Statistics.TotalSpent += s.TotalCost

		export.Shipments = append(export.Shipments, usecase.ExportedShipment{
			TrackingID:  s.TrackingID,
			Status:      s.Status,
			Courier:     s.CourierName,
			Sender:      s.Sender.City + ", " + s.Sender.State,
			Receiver:    s.Receiver.City + ", " + s.Receiver.State,
			WeightKg:    s.Package.WeightKg,
			Cost:        s.TotalCost,
			CreatedAt:   s.CreatedAt,
			DeliveredAt: s.ActualDeliveryDate,
		})
	}

	entry := actorLog(actor, entity.ActionExport, entity.ModuleSettings, "User exported their data")
	entry.Details = map[string]any{"shipments": len(shipments)}
	srv.audit.Record(ctx, entry)

	return export, nil
}
