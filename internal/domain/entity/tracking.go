package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEvent is the status recorded on a tracking log entry.
type TrackingEvent string

const (
	EventOrderCreated    TrackingEvent = "order_created"
	EventPickupScheduled TrackingEvent = "pickup_scheduled"
	EventPending         TrackingEvent = "pending"
	EventConfirmed       TrackingEvent = "confirmed"
	EventPickedUp        TrackingEvent = "picked_up"
	EventInTransit       TrackingEvent = "in_transit"
	EventReachedHub      TrackingEvent = "reached_hub"
	EventOutForDelivery  TrackingEvent = "out_for_delivery"
	EventDelivered       TrackingEvent = "delivered"
	EventFailedAttempt   TrackingEvent = "failed_attempt"
	EventReturned        TrackingEvent = "returned"
	EventCancelled       TrackingEvent = "cancelled"
)

// DefaultUpdatedBy is recorded when no operator is attached to a log entry.
const DefaultUpdatedBy = "System"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is where a tracking event happened.
type Location struct {
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	Facility    string       `json:"facility,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// TrackingLogEntry is one immutable waypoint in a shipment's history.
type TrackingLogEntry struct {
	ID          uuid.UUID     `json:"id"`
	ShipmentID  uuid.UUID     `json:"shipment_id"`
	TrackingID  string        `json:"tracking_id"` // Denormalized for lookups by tracking ID.
	Status      TrackingEvent `json:"status"`
	Description string        `json:"description"`
	Location    Location      `json:"location"`
	Remarks     string        `json:"remarks,omitempty"`
	UpdatedBy   string        `json:"updated_by"`
	Timestamp   time.Time     `json:"timestamp"`
}
