// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies an in-app notification.
type NotificationType string

const (
	NotificationShipmentCreated   NotificationType = "shipment_created"
	NotificationShipmentPicked    NotificationType = "shipment_picked"
	NotificationShipmentInTransit NotificationType = "shipment_in_transit"
	NotificationShipmentDelivered NotificationType = "shipment_delivered"
	NotificationShipmentFailed    NotificationType = "shipment_failed"
	NotificationSystem            NotificationType = "system"
	NotificationAlert             NotificationType = "alert"
	NotificationReminder          NotificationType = "reminder"
)

// NotificationData links a notification back to the shipment it is about.
type NotificationData struct {
	ShipmentID *uuid.UUID `json:"shipment_id,omitempty"`
	TrackingID string     `json:"tracking_id,omitempty"`
}

// Notification is a message addressed to one user.
type Notification struct {
	ID          uuid.UUID        `json:"id"`            // The Global Unique Identifier (GUID) for the notification.
	UserID      uuid.UUID        `json:"user_id"`       // The recipient.
	Type        NotificationType `json:"type"`          // What kind of event this is about.
	Title       string           `json:"title"`         // Short headline.
	Message     string           `json:"message"`       // Human-readable body.
	Data        NotificationData `json:"data"`          // Optional shipment reference.
	IsRead      bool             `json:"is_read"`       // Whether the user has seen it.
	IsEmailSent bool             `json:"is_email_sent"` // Whether an email copy was sent.
	CreatedAt   time.Time        `json:"created_at"`    // Timestamp of when this record was created.
}
