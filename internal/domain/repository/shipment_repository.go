package repository

import (
	"context"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	// Create persists a shipment. A duplicate tracking ID yields ErrTrackingIDConflict.
	Create(ctx context.Context, shipment *entity.Shipment) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)

	FindByTrackingID(ctx context.Context, trackingID string) (*entity.Shipment, error)

	// List returns a page of shipments matching the filter, newest first, and the total match count.
	List(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, int64, error)

	// ListRecent returns the most recently created shipments.
	ListRecent(ctx context.Context, limit int) ([]*entity.Shipment, error)

	// ListForAnalytics returns every shipment matching the filter, ignoring pagination.
	ListForAnalytics(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, error)

	// Update persists the full shipment. TotalCost is recomputed before writing.
	Update(ctx context.Context, shipment *entity.Shipment) error

	// UpdateStatus writes only the lifecycle fields touched by a transition.
	UpdateStatus(ctx context.Context, shipment *entity.Shipment) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// TrackingLogRepository defines the append-only store of tracking log entries.
type TrackingLogRepository interface {
	Append(ctx context.Context, entry *entity.TrackingLogEntry) error

	// ListByTrackingID returns entries in chronological order.
	ListByTrackingID(ctx context.Context, trackingID string) ([]*entity.TrackingLogEntry, error)

	// FindLatestByTrackingID returns the newest entry, or nil when there is none.
	FindLatestByTrackingID(ctx context.Context, trackingID string) (*entity.TrackingLogEntry, error)

	DeleteByShipmentID(ctx context.Context, shipmentID uuid.UUID) error
}
