package usecase

import (
	"context"
	"time"

	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/tracking"
)

// TrackingSample is a recent tracking ID offered to try the public tracker.
type TrackingSample struct {
	TrackingID string                `json:"tracking_id"`
	Status     entity.ShipmentStatus `json:"status"`
	Courier    string                `json:"courier"`
}

// Place is the coarse public location of a shipment party.
type Place struct {
	Name  string `json:"name,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
}

// TrackResult is the public view of a shipment. It omits contact details.
type TrackResult struct {
	TrackingID           string                 `json:"tracking_id"`
	Status               entity.ShipmentStatus  `json:"status"`
	Courier              string                 `json:"courier"`
	CourierDetails       *entity.CourierRef     `json:"courier_details,omitempty"`
	CourierContact       *entity.CourierContact `json:"courier_contact,omitempty"`
	Sender               Place                  `json:"sender"`
	Receiver             Place                  `json:"receiver"`
	Package              entity.Package         `json:"package"`
	ServiceType          entity.ServiceType     `json:"service_type"`
	CreatedAt            time.Time              `json:"created_at"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time             `json:"actual_delivery_date,omitempty"`
	Timeline             *tracking.Timeline     `json:"timeline"`
}

// SimulateResult reports one simulated step.
type SimulateResult struct {
	TrackingID     string                `json:"tracking_id"`
	PreviousStatus entity.ShipmentStatus `json:"previous_status"`
	NewStatus      entity.ShipmentStatus `json:"new_status"`
}

// TrackingUsecase defines the public tracking operations.
type TrackingUsecase interface {
	// Samples returns the tracking IDs of the most recent shipments.
	Samples(ctx context.Context) ([]TrackingSample, error)
	Track(ctx context.Context, trackingID string) (*TrackResult, error)
	Timeline(ctx context.Context, trackingID string) (*tracking.Timeline, error)
	// Simulate advances the shipment one step along the happy path.
	Simulate(ctx context.Context, trackingID string) (*SimulateResult, error)
}
