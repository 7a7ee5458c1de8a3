package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType is the delivery speed/cost tier of a booking.
type ServiceType string

const (
	ServiceEconomy   ServiceType = "economy"
	ServiceStandard  ServiceType = "standard"
	ServiceExpress   ServiceType = "express"
	ServiceOvernight ServiceType = "overnight"
)

// IsValid checks if the ServiceType is a valid value.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceEconomy, ServiceStandard, ServiceExpress, ServiceOvernight:
		return true
	default:
		return false
	}
}

// OrDefault returns standard for an empty service type.
func (s ServiceType) OrDefault() ServiceType {
	if s == "" {
		return ServiceStandard
	}

	return s
}

// PaymentMode is how the receiver pays for a shipment.
type PaymentMode string

const (
	PaymentPrepaid PaymentMode = "prepaid"
	PaymentCOD     PaymentMode = "cod"
)

// IsValid checks if the PaymentMode is a valid value.
func (p PaymentMode) IsValid() bool {
	return p == PaymentPrepaid || p == PaymentCOD
}

// IsCOD reports whether the shipment is paid cash on delivery.
func (p PaymentMode) IsCOD() bool {
	return p == PaymentCOD
}

// PackageCategory classifies the shipped goods.
type PackageCategory string

const (
	CategoryDocuments   PackageCategory = "documents"
	CategoryElectronics PackageCategory = "electronics"
	CategoryClothing    PackageCategory = "clothing"
	CategoryFood        PackageCategory = "food"
	CategoryFragile     PackageCategory = "fragile"
	CategoryOther       PackageCategory = "other"
)

// ShipmentStatus is the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusConfirmed      ShipmentStatus = "confirmed"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusFailed         ShipmentStatus = "failed"
	StatusReturned       ShipmentStatus = "returned"
	StatusCancelled      ShipmentStatus = "cancelled"
)

// AllShipmentStatuses lists every status in lifecycle order.
var AllShipmentStatuses = []ShipmentStatus{
	StatusPending, StatusConfirmed, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
	StatusDelivered, StatusFailed, StatusReturned, StatusCancelled,
}

// IsValid checks if the ShipmentStatus is a valid value.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusFailed, StatusReturned, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsDeletable reports whether a shipment in this status may still be removed.
func (s ShipmentStatus) IsDeletable() bool {
	return s == StatusPending || s == StatusCancelled
}

// Party is the sender or the receiver of a shipment.
type Party struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Package holds the physical attributes of the shipped goods.
type Package struct {
	WeightKg      float64         `json:"weight"`           // Actual weight in kg.
	LengthCm      float64         `json:"length,omitempty"` // Dimensions in cm.
	WidthCm       float64         `json:"width,omitempty"`
	HeightCm      float64         `json:"height,omitempty"`
	Description   string          `json:"description,omitempty"`
	DeclaredValue float64         `json:"value,omitempty"`
	Category      PackageCategory `json:"category"`
}

// Shipment is a booked consignment owned by a business user.
type Shipment struct {
	ID                   uuid.UUID      `json:"id"`
	TrackingID           string         `json:"tracking_id"`
	UserID               uuid.UUID      `json:"user_id"`
	CourierID            uuid.UUID      `json:"courier_id"`
	CourierName          string         `json:"courier_name"`
	Sender               Party          `json:"sender"`
	Receiver             Party          `json:"receiver"`
	Package              Package        `json:"package"`
	ServiceType          ServiceType    `json:"service_type"`
	PaymentMode          PaymentMode    `json:"payment_mode"`
	CODAmount            float64        `json:"cod_amount"`
	ShippingCost         float64        `json:"shipping_cost"`
	InsuranceCost        float64        `json:"insurance_cost"`
	TotalCost            float64        `json:"total_cost"`
	Status               ShipmentStatus `json:"status"`
	PickupDate           *time.Time     `json:"pickup_date,omitempty"`
	ExpectedDeliveryDate *time.Time     `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time     `json:"actual_delivery_date,omitempty"`
	SpecialInstructions  string         `json:"special_instructions,omitempty"`
	LabelGenerated       bool           `json:"label_generated"`
	LabelURL             string         `json:"label_url,omitempty"`
	FailureReason        string         `json:"failure_reason,omitempty"`
	AttemptCount         int            `json:"attempt_count"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// RecomputeTotal derives TotalCost from its parts. Repositories call it on every write.
func (s *Shipment) RecomputeTotal() {
	s.TotalCost = s.ShippingCost + s.InsuranceCost
}

// ShipmentFilter narrows shipment listings.
type ShipmentFilter struct {
	UserID    *uuid.UUID      // Nil lists every tenant.
	Status    *ShipmentStatus // Nil lists every status.
	CourierID *uuid.UUID
	From      *time.Time // CreatedAt lower bound, inclusive.
	To        *time.Time // CreatedAt upper bound, inclusive.
	Search    string     // Case-insensitive match on tracking ID, receiver name or city.
	Limit     int
	Offset    int
}
