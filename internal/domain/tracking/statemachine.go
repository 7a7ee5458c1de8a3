package tracking

import (
	"fmt"
	"strings"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/google/uuid"
)

// Log descriptions used outside the status tables.
const (
	GenesisDescription     = "Order has been created and is awaiting pickup"
	BulkGenesisDescription = "Order created via bulk upload"
	SimulationUpdatedBy    = "Simulation"
)

// simulationSequence is the only path the simulator walks.
var simulationSequence = []entity.ShipmentStatus{
	entity.StatusPending,
	entity.StatusConfirmed,
	entity.StatusPickedUp,
	entity.StatusInTransit,
	entity.StatusOutForDelivery,
	entity.StatusDelivered,
}

// Operator is the capability to drive shipments through explicit transitions.
// The zero value grants nothing; obtain one through AuthorizeOperator.
type Operator struct {
	actor entity.Actor
	ok    bool
}

// AuthorizeOperator mints an Operator for staff and admin actors.
func AuthorizeOperator(actor entity.Actor) (Operator, error) {
	if !actor.CanOperate() {
		return Operator{}, domainerrors.ErrOperatorRequired
	}

	return Operator{actor: actor, ok: true}, nil
}

// Actor returns the actor the capability was minted for.
func (o Operator) Actor() entity.Actor {
	return o.actor
}

// Valid reports whether the operator came from AuthorizeOperator.
func (o Operator) Valid() bool {
	return o.ok
}

// EffectKind tags an Effect.
type EffectKind int

const (
	EffectAppendLog EffectKind = iota + 1
	EffectNotify
)

func (k EffectKind) String() string {
	switch k {
	case EffectAppendLog:
		return "append_log"
	case EffectNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// Notice is a notification addressed to the owner of a shipment.
type Notice struct {
	UserID  uuid.UUID
	Type    entity.NotificationType
	Title   string
	Message string
	Data    entity.NotificationData
}

// Effect is one side effect of a lifecycle change, applied by the caller in order.
type Effect struct {
	Kind   EffectKind
	Log    *entity.TrackingLogEntry // Set for EffectAppendLog.
	Notice *Notice                  // Set for EffectNotify.
}

// Outcome is the result of a lifecycle step.
type Outcome struct {
	Shipment *entity.Shipment
	Effects  []Effect
}

// Log returns the tracking log entry of the outcome.
func (o *Outcome) Log() *entity.TrackingLogEntry {
	for _, e := range o.Effects {
		if e.Kind == EffectAppendLog {
			return e.Log
		}
	}

	return nil
}

// Notices returns the notifications of the outcome in order.
func (o *Outcome) Notices() []*Notice {
	var notices []*Notice
	for _, e := range o.Effects {
		if e.Kind == EffectNotify {
			notices = append(notices, e.Notice)
		}
	}

	return notices
}

// Meta carries the operator-provided details of an explicit transition.
type Meta struct {
	Location  entity.Location
	Remarks   string
	UpdatedBy string
}

// Transition moves the shipment to status. Any status may follow any other.
// The shipment passed in is not modified.
func Transition(op Operator, shipment entity.Shipment, status entity.ShipmentStatus, meta Meta, now time.Time) (*Outcome, error) {
	if !op.Valid() {
		return nil, domainerrors.ErrOperatorRequired
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidStatus.WithDetails(string(status))
	}

	next := shipment
	next.Status = status
	next.UpdatedAt = now

	switch status {
	case entity.StatusDelivered:
		delivered := now
		next.ActualDeliveryDate = &delivered
	case entity.StatusFailed:
		next.FailureReason = meta.Remarks
		next.AttemptCount++
	}

	updatedBy := meta.UpdatedBy
	if updatedBy == "" {
		updatedBy = entity.DefaultUpdatedBy
	}
	description := StatusDescription(status)

	out := &Outcome{
		Shipment: &next,
		Effects: []Effect{{
			Kind: EffectAppendLog,
			Log: &entity.TrackingLogEntry{
				ShipmentID:  next.ID,
				TrackingID:  next.TrackingID,
				Status:      EventForStatus(status),
				Description: description,
				Location:    meta.Location,
				Remarks:     meta.Remarks,
				UpdatedBy:   updatedBy,
				Timestamp:   now,
			},
		}},
	}

	if typ, ok := NotificationForStatus(status); ok {
		out.Effects = append(out.Effects, Effect{
			Kind: EffectNotify,
			Notice: &Notice{
				UserID:  next.UserID,
				Type:    typ,
				Title:   "Shipment " + strings.ToUpper(strings.Replace(string(status), "_", " ", 1)),
				Message: fmt.Sprintf("Your shipment %s status: %s", next.TrackingID, description),
				Data:    shipmentData(&next),
			},
		})
	}

	return out, nil
}

// Simulate advances the shipment one step along pending → confirmed → picked_up →
// in_transit → out_for_delivery → delivered. Intermediate steps pass through a hub
// from pick; the final step arrives at the receiver.
func Simulate(shipment entity.Shipment, pick HubPicker, now time.Time) (*Outcome, error) {
	idx := -1
	for i, s := range simulationSequence {
		if s == shipment.Status {
			idx = i

			break
		}
	}
	if idx < 0 || idx == len(simulationSequence)-1 {
		return nil, domainerrors.ErrCannotProgress.WithDetails("current status " + string(shipment.Status))
	}

	status := simulationSequence[idx+1]
	next := shipment
	next.Status = status
	next.UpdatedAt = now

	var location entity.Location
	if status == entity.StatusDelivered {
		delivered := now
		next.ActualDeliveryDate = &delivered
		location = entity.Location{City: next.Receiver.City, State: next.Receiver.State}
	} else {
		if pick == nil {
			pick = DefaultHubs().Picker(nil)
		}
		location = pick().Location()
	}

	return &Outcome{
		Shipment: &next,
		Effects: []Effect{{
			Kind: EffectAppendLog,
			Log: &entity.TrackingLogEntry{
				ShipmentID:  next.ID,
				TrackingID:  next.TrackingID,
				Status:      EventForStatus(status),
				Description: SimulationDescription(status),
				Location:    location,
				UpdatedBy:   SimulationUpdatedBy,
				Timestamp:   now,
			},
		}},
	}, nil
}

// Genesis returns the effects of creating a shipment: the order_created entry and the owner's notice.
func Genesis(shipment *entity.Shipment, description string, now time.Time) []Effect {
	if description == "" {
		description = GenesisDescription
	}

	return []Effect{
		{
			Kind: EffectAppendLog,
			Log: &entity.TrackingLogEntry{
				ShipmentID:  shipment.ID,
				TrackingID:  shipment.TrackingID,
				Status:      entity.EventOrderCreated,
				Description: description,
				Location:    entity.Location{City: shipment.Sender.City, State: shipment.Sender.State},
				UpdatedBy:   entity.DefaultUpdatedBy,
				Timestamp:   now,
			},
		},
		{
			Kind: EffectNotify,
			Notice: &Notice{
				UserID:  shipment.UserID,
				Type:    entity.NotificationShipmentCreated,
				Title:   "Shipment Created",
				Message: fmt.Sprintf("Your shipment %s has been created successfully", shipment.TrackingID),
				Data:    shipmentData(shipment),
			},
		},
	}
}

// PickupRequest is what an owner supplies to book a pickup.
type PickupRequest struct {
	Date         time.Time
	TimeSlot     string
	Instructions string
	UpdatedBy    string
}

// SchedulePickup books the pickup of a pending or confirmed shipment and confirms it.
func SchedulePickup(shipment entity.Shipment, req PickupRequest, now time.Time) (*Outcome, error) {
	if shipment.Status != entity.StatusPending && shipment.Status != entity.StatusConfirmed {
		return nil, domainerrors.ErrInvalidState.WithDetails("pickup can only be scheduled before the package is picked up")
	}
	if req.Date.IsZero() {
		return nil, domainerrors.ErrInvalidInput.WithDetails("pickup date is required")
	}

	next := shipment
	date := req.Date
	next.PickupDate = &date
	next.Status = entity.StatusConfirmed
	next.UpdatedAt = now
	if req.Instructions != "" {
		next.SpecialInstructions = req.Instructions
	}

	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = entity.DefaultUpdatedBy
	}

	description := "Pickup scheduled for " + req.Date.Format(time.DateOnly)
	if req.TimeSlot != "" {
		description += " " + req.TimeSlot
	}

	return &Outcome{
		Shipment: &next,
		Effects: []Effect{{
			Kind: EffectAppendLog,
			Log: &entity.TrackingLogEntry{
				ShipmentID:  next.ID,
				TrackingID:  next.TrackingID,
				Status:      entity.EventPickupScheduled,
				Description: description,
				Location:    entity.Location{City: next.Sender.City, State: next.Sender.State},
				Remarks:     req.Instructions,
				UpdatedBy:   updatedBy,
				Timestamp:   now,
			},
		}},
	}, nil
}

// CanDelete allows removal only while the shipment is pending or cancelled.
func CanDelete(shipment *entity.Shipment) error {
	if !shipment.Status.IsDeletable() {
		return domainerrors.ErrShipmentNotDeletable.WithDetails("current status " + string(shipment.Status))
	}

	return nil
}

// NextTimestamp keeps a shipment's log non-decreasing when the clock lags the latest entry.
func NextTimestamp(now time.Time, latest *entity.TrackingLogEntry) time.Time {
	if latest != nil && latest.Timestamp.After(now) {
		return latest.Timestamp
	}

	return now
}

// EventForStatus maps a shipment status to the event recorded in its log entry.
func EventForStatus(status entity.ShipmentStatus) entity.TrackingEvent {
	switch status {
	case entity.StatusFailed:
		return entity.EventFailedAttempt
	default:
		return entity.TrackingEvent(status)
	}
}

// StatusDescription is the log text of an explicit transition.
func StatusDescription(status entity.ShipmentStatus) string {
	switch status {
	case entity.StatusPending:
		return "Order is pending confirmation"
	case entity.StatusConfirmed:
		return "Order has been confirmed"
	case entity.StatusPickedUp:
		return "Package has been picked up"
	case entity.StatusInTransit:
		return "Package is in transit"
	case entity.StatusOutForDelivery:
		return "Package is out for delivery"
	case entity.StatusDelivered:
		return "Package has been delivered"
	case entity.StatusFailed:
		return "Delivery attempt failed"
	case entity.StatusReturned:
		return "Package is being returned to sender"
	case entity.StatusCancelled:
		return "Order has been cancelled"
	default:
		return "Status updated to " + string(status)
	}
}

// SimulationDescription is the log text of a simulated step.
func SimulationDescription(status entity.ShipmentStatus) string {
	switch status {
	case entity.StatusConfirmed:
		return "Order confirmed, awaiting pickup"
	case entity.StatusPickedUp:
		return "Package picked up from sender"
	case entity.StatusInTransit:
		return "Package in transit to destination"
	case entity.StatusOutForDelivery:
		return "Package out for delivery"
	case entity.StatusDelivered:
		return "Package delivered successfully"
	default:
		return StatusDescription(status)
	}
}

// NotificationForStatus reports whether owners are told about a transition to status, and how.
func NotificationForStatus(status entity.ShipmentStatus) (entity.NotificationType, bool) {
	switch status {
	case entity.StatusPickedUp:
		return entity.NotificationShipmentPicked, true
	case entity.StatusInTransit:
		return entity.NotificationShipmentInTransit, true
	case entity.StatusDelivered:
		return entity.NotificationShipmentDelivered, true
	case entity.StatusFailed:
		return entity.NotificationShipmentFailed, true
	default:
		return "", false
	}
}

func shipmentData(shipment *entity.Shipment) entity.NotificationData {
	id := shipment.ID

	return entity.NotificationData{ShipmentID: &id, TrackingID: shipment.TrackingID}
}
