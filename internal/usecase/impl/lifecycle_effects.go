package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/pkg/errors"
)

// lifecycleEffects delivers what a committed lifecycle change owes the outside world:
// owner notifications and the shipment event. Failures are logged and swallowed.
type lifecycleEffects struct {
	notifier  usecase.NotificationUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

func (e *lifecycleEffects) dispatch(ctx context.Context, shipment *entity.Shipment, entry *entity.TrackingLogEntry, notices []*tracking.Notice) {
	ctx = context.WithoutCancel(ctx)
	logger := deliverycontext.GetLoggerOrDefault(ctx, e.logger)

	for _, notice := range notices {
		if err := e.notifier.Emit(ctx, notice.UserID, notice.Type, notice.Title, notice.Message, notice.Data); err != nil {
			logger.Warn("Failed to emit shipment notification",
				slog.String("trackingID", shipment.TrackingID),
				slog.String("type", string(notice.Type)),
				slog.Any("error", err),
			)
		}
	}

	if entry == nil || e.publisher == nil {
		return
	}

	event := &service.ShipmentEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		ShipmentID:  shipment.ID.String(),
		TrackingID:  shipment.TrackingID,
		UserID:      shipment.UserID.String(),
		CourierID:   shipment.CourierID.String(),
		Event:       string(entry.Status),
		Status:      string(shipment.Status),
		Description: entry.Description,
		City:        entry.Location.City,
		OccurredAt:  entry.Timestamp,
	}
	if err := e.publisher.PublishShipmentEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish shipment event",
			slog.String("trackingID", shipment.TrackingID),
			slog.String("event", event.Event),
			slog.Any("error", err),
		)
	}
}

// lifecycleTime is now, or the latest log timestamp of the shipment when the clock lags behind it.
func lifecycleTime(ctx context.Context, logRepo repository.TrackingLogRepository, trackingID string, now time.Time) (time.Time, error) {
	latest, err := logRepo.FindLatestByTrackingID(ctx, trackingID)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to find latest tracking log")
	}

	return tracking.NextTimestamp(now, latest), nil
}
