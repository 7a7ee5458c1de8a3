package impl

import (
	"context"
	"log/slog"
	"strings"

	"courierhub/config"
	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

const sampleTrackingIDs = 5

// trackingService implements the TrackingUsecase interface.
type trackingService struct {
	lifecycleEffects

	txManager       repository.TransactionManager
	shipmentRepo    repository.ShipmentRepository
	trackingLogRepo repository.TrackingLogRepository
	courierRepo     repository.CourierRepository
	hubs            tracking.HubPicker
	clock           clockz.Clock
}

// TrackingServiceParams holds dependencies for TrackingService, injected by Fx.
type TrackingServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	ShipmentRepo    repository.ShipmentRepository
	TrackingLogRepo repository.TrackingLogRepository
	CourierRepo     repository.CourierRepository
	Notifier        usecase.NotificationUsecase
	Publisher       service.EventPublisher
	Clock           clockz.Clock
	Config          *config.Config
	Logger          *slog.Logger
}

// NewTrackingService is the constructor for trackingService.
func NewTrackingService(params TrackingServiceParams) usecase.TrackingUsecase {
	return &trackingService{
		lifecycleEffects: lifecycleEffects{
			notifier:  params.Notifier,
			publisher: params.Publisher,
			logger:    params.Logger,
		},
		txManager:       params.TxManager,
		shipmentRepo:    params.ShipmentRepo,
		trackingLogRepo: params.TrackingLogRepo,
		courierRepo:     params.CourierRepo,
		hubs:            hubPool(params.Config).Picker(nil),
		clock:           params.Clock,
	}
}

// hubPool converts the configured hub cities. An empty list yields the default pool.
func hubPool(cfg *config.Config) tracking.HubPool {
	if cfg == nil || cfg.Shipment == nil {
		return nil
	}

	pool := make(tracking.HubPool, 0, len(cfg.Shipment.HubCities))
	for _, hub := range cfg.Shipment.HubCities {
		pool = append(pool, tracking.Hub{
			City:        hub.City,
			Coordinates: entity.Coordinates{Lat: hub.Lat, Lng: hub.Lng},
		})
	}

	return pool
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *trackingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *trackingService) Samples(ctx context.Context) ([]usecase.TrackingSample, error) {
	shipments, err := srv.shipmentRepo.ListRecent(ctx, sampleTrackingIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent shipments")
	}

	samples := make([]usecase.TrackingSample, 0, len(shipments))
	for _, s := range shipments {
		samples = append(samples, usecase.TrackingSample{
			TrackingID: s.TrackingID,
			Status:     s.Status,
			Courier:    s.CourierName,
		})
	}

	return samples, nil
}

// Track returns the public view of a shipment. A shipment without history gets an empty timeline.
func (srv *trackingService) Track(ctx context.Context, trackingID string) (*usecase.TrackResult, error) {
	trackingID = normalizeTrackingID(trackingID)

	shipment, err := srv.shipmentRepo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shipment")
	}

	entries, err := srv.trackingLogRepo.ListByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracking logs")
	}
	timeline, err := tracking.BuildTimeline(entries)
	if errors.Is(err, domainerrors.ErrTrackingNotFound) {
		timeline = &tracking.Timeline{TrackingID: trackingID, Entries: []tracking.TimelineEntry{}}
	} else if err != nil {
		return nil, err
	}

	result := &usecase.TrackResult{
		TrackingID:           shipment.TrackingID,
		Status:               shipment.Status,
		Courier:              shipment.CourierName,
		Sender:               usecase.Place{City: shipment.Sender.City, State: shipment.Sender.State},
		Receiver:             usecase.Place{Name: shipment.Receiver.Name, City: shipment.Receiver.City, State: shipment.Receiver.State},
		Package:              shipment.Package,
		ServiceType:          shipment.ServiceType,
		CreatedAt:            shipment.CreatedAt,
		ExpectedDeliveryDate: shipment.ExpectedDeliveryDate,
		ActualDeliveryDate:   shipment.ActualDeliveryDate,
		Timeline:             timeline,
	}

	courier, err := srv.courierRepo.FindByID(ctx, shipment.CourierID)
	switch {
	case err == nil:
		ref := courier.Ref()
		contact := courier.Contact
		result.CourierDetails = &ref
		result.CourierContact = &contact
	case errors.Is(err, domainerrors.ErrCourierNotFound):
		// The courier was removed after booking; the stored name still identifies it.
	default:
		return nil, errors.Wrap(err, "failed to find courier")
	}

	return result, nil
}

func (srv *trackingService) Timeline(ctx context.Context, trackingID string) (*tracking.Timeline, error) {
	entries, err := srv.trackingLogRepo.ListByTrackingID(ctx, normalizeTrackingID(trackingID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracking logs")
	}

	return tracking.BuildTimeline(entries)
}

// Simulate walks the shipment one step. The owner is not notified of simulated steps.
func (srv *trackingService) Simulate(ctx context.Context, trackingID string) (*usecase.SimulateResult, error) {
	shipment, err := srv.shipmentRepo.FindByTrackingID(ctx, normalizeTrackingID(trackingID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shipment")
	}

	var outcome *tracking.Outcome
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		logRepo := repoFactory.NewTrackingLogRepository()

		now, err := lifecycleTime(ctx, logRepo, shipment.TrackingID, srv.clock.Now())
		if err != nil {
			return err
		}
		outcome, err = tracking.Simulate(*shipment, srv.hubs, now)
		if err != nil {
			return err
		}
		if err := repoFactory.NewShipmentRepository().UpdateStatus(ctx, outcome.Shipment); err != nil {
			return errors.Wrap(err, "failed to update shipment status")
		}
		if err := logRepo.Append(ctx, outcome.Log()); err != nil {
			return errors.Wrap(err, "failed to append tracking log")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to simulate tracking update")
	}

	srv.dispatch(ctx, outcome.Shipment, outcome.Log(), nil)
	srv.log(ctx).Info("Tracking update simulated",
		slog.String("trackingID", shipment.TrackingID),
		slog.String("from", string(shipment.Status)),
		slog.String("to", string(outcome.Shipment.Status)),
	)

	return &usecase.SimulateResult{
		TrackingID:     shipment.TrackingID,
		PreviousStatus: shipment.Status,
		NewStatus:      outcome.Shipment.Status,
	}, nil
}

// normalizeTrackingID accepts tracking IDs typed in any case.
func normalizeTrackingID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
