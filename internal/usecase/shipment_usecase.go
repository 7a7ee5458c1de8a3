package usecase

import (
	"context"
	"time"

	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/service"
	"courierhub/internal/domain/tracking"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateShipmentInput defines the data required to book a shipment.
type CreateShipmentInput struct {
	CourierID           uuid.UUID
	Sender              entity.Party
	Receiver            entity.Party
	Package             entity.Package
	ServiceType         entity.ServiceType
	PaymentMode         entity.PaymentMode
	CODAmount           float64
	ShippingCost        *float64 // Nil lets the rate engine price the booking.
	InsuranceCost       float64
	PickupDate          *time.Time
	SpecialInstructions string
}

// ListShipmentsInput narrows a shipment listing.
type ListShipmentsInput struct {
	PageRequest
	Status    string // Empty or "all" lists every status.
	CourierID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Search    string
}

// UpdateShipmentInput carries the editable fields of a shipment. Nil fields are left untouched.
// Status and tracking ID are not editable here.
type UpdateShipmentInput struct {
	Sender               *entity.Party
	Receiver             *entity.Party
	Package              *entity.Package
	ServiceType          *entity.ServiceType
	PaymentMode          *entity.PaymentMode
	CODAmount            *float64
	ShippingCost         *float64
	InsuranceCost        *float64
	PickupDate           *time.Time
	ExpectedDeliveryDate *time.Time
	SpecialInstructions  *string
}

// UpdateStatusInput is an operator's explicit status change.
type UpdateStatusInput struct {
	Status   entity.ShipmentStatus
	Location entity.Location
	Remarks  string
}

// SchedulePickupInput books the pickup of a shipment.
type SchedulePickupInput struct {
	Date         time.Time
	TimeSlot     string
	Instructions string
}

// --- Output DTOs ---

// ShipmentList is a page of shipments.
type ShipmentList struct {
	PageInfo
	Shipments []*entity.Shipment
}

// ShipmentDetail is a shipment with its tracking history, newest entry first.
type ShipmentDetail struct {
	Shipment     *entity.Shipment
	TrackingLogs []*entity.TrackingLogEntry
}

// BulkRowError reports a rejected row of a bulk upload. Rows are 1-based.
type BulkRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BulkCreateOutput is the result of a bulk upload.
type BulkCreateOutput struct {
	Created []*entity.Shipment
	Errors  []BulkRowError
}

// LabelOutput is a generated label together with the updated shipment.
type LabelOutput struct {
	Shipment *entity.Shipment
	Label    *service.Label
}

// ShipmentUsecase defines the booking side of the shipment lifecycle.
type ShipmentUsecase interface {
	CreateShipment(ctx context.Context, actor entity.Actor, input CreateShipmentInput) (*entity.Shipment, error)
	// BulkCreate books every valid row and reports the others.
	BulkCreate(ctx context.Context, actor entity.Actor, inputs []CreateShipmentInput) (*BulkCreateOutput, error)

	GetShipment(ctx context.Context, actor entity.Actor, id uuid.UUID) (*ShipmentDetail, error)
	// ListShipments lists the actor's shipments; admins see every tenant.
	ListShipments(ctx context.Context, actor entity.Actor, input ListShipmentsInput) (*ShipmentList, error)
	UpdateShipment(ctx context.Context, actor entity.Actor, id uuid.UUID, input UpdateShipmentInput) (*entity.Shipment, error)
	DeleteShipment(ctx context.Context, actor entity.Actor, id uuid.UUID) error

	// UpdateStatus applies an explicit transition. Only an Operator may call it.
	UpdateStatus(ctx context.Context, op tracking.Operator, id uuid.UUID, input UpdateStatusInput) (*entity.Shipment, error)
	SchedulePickup(ctx context.Context, actor entity.Actor, id uuid.UUID, input SchedulePickupInput) (*entity.Shipment, error)

	GenerateLabel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*LabelOutput, error)
	GetLabel(ctx context.Context, actor entity.Actor, id uuid.UUID) (*service.Label, error)
}
