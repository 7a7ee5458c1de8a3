package service

import (
	"context"
	"time"
)

// ShipmentEvent is published after a shipment change has been committed.
type ShipmentEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	ShipmentID  string    `json:"shipment_id"`
	TrackingID  string    `json:"tracking_id"`
	UserID      string    `json:"user_id"`
	CourierID   string    `json:"courier_id"`
	Event       string    `json:"event"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	City        string    `json:"city,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishShipmentEvent publishes a shipment lifecycle event for downstream consumers
	PublishShipmentEvent(ctx context.Context, event *ShipmentEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
