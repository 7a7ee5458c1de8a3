package tracking

import (
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)

func newShipment(status entity.ShipmentStatus) entity.Shipment {
	return entity.Shipment{
		ID:          uuid.New(),
		TrackingID:  "BLUTEST0001",
		UserID:      uuid.New(),
		CourierName: "BlueDart",
		Sender:      entity.Party{Name: "Acme", City: "Pune", State: "Maharashtra"},
		Receiver:    entity.Party{Name: "Ravi", City: "Kochi", State: "Kerala"},
		Status:      status,
	}
}

func staff(t *testing.T) Operator {
	t.Helper()

	op, err := AuthorizeOperator(entity.Actor{UserID: uuid.New(), Email: "staff@courier.com", Role: entity.RoleStaff})
	require.NoError(t, err)

	return op
}

func TestAuthorizeOperator(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleStaff} {
		op, err := AuthorizeOperator(entity.Actor{Role: role})
		require.NoError(t, err)
		assert.True(t, op.Valid())
		assert.Equal(t, role, op.Actor().Role)
	}

	_, err := AuthorizeOperator(entity.Actor{Role: entity.RoleBusiness})
	assert.ErrorIs(t, err, domainerrors.ErrOperatorRequired)
	assert.Equal(t, domainerrors.KindForbidden, domainerrors.KindOf(err))
}

func TestTransition_RequiresOperator(t *testing.T) {
	_, err := Transition(Operator{}, newShipment(entity.StatusPending), entity.StatusConfirmed, Meta{}, t0)
	assert.ErrorIs(t, err, domainerrors.ErrOperatorRequired)
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := Transition(staff(t), newShipment(entity.StatusPending), "lost_at_sea", Meta{}, t0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
	assert.Equal(t, domainerrors.KindInvalidInput, domainerrors.KindOf(err))
}

func TestTransition_Delivered(t *testing.T) {
	shipment := newShipment(entity.StatusOutForDelivery)

	out, err := Transition(staff(t), shipment, entity.StatusDelivered, Meta{
		Location:  entity.Location{City: "Kochi", State: "Kerala"},
		UpdatedBy: "staff@courier.com",
	}, t0)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDelivered, out.Shipment.Status)
	require.NotNil(t, out.Shipment.ActualDeliveryDate)
	assert.Equal(t, t0, *out.Shipment.ActualDeliveryDate)
	assert.Equal(t, entity.StatusOutForDelivery, shipment.Status, "input must not change")
	assert.Nil(t, shipment.ActualDeliveryDate)

	require.Len(t, out.Effects, 2)
	assert.Equal(t, EffectAppendLog, out.Effects[0].Kind)
	assert.Equal(t, EffectNotify, out.Effects[1].Kind)

	log := out.Log()
	assert.Equal(t, shipment.TrackingID, log.TrackingID)
	assert.Equal(t, shipment.ID, log.ShipmentID)
	assert.Equal(t, entity.EventDelivered, log.Status)
	assert.Equal(t, "Package has been delivered", log.Description)
	assert.Equal(t, "Kochi", log.Location.City)
	assert.Equal(t, "staff@courier.com", log.UpdatedBy)
	assert.Equal(t, t0, log.Timestamp)

	notice := out.Notices()[0]
	assert.Equal(t, shipment.UserID, notice.UserID)
	assert.Equal(t, entity.NotificationShipmentDelivered, notice.Type)
	assert.Equal(t, "Shipment DELIVERED", notice.Title)
	assert.Equal(t, "Your shipment BLUTEST0001 status: Package has been delivered", notice.Message)
	assert.Equal(t, shipment.TrackingID, notice.Data.TrackingID)
	assert.Equal(t, shipment.ID, *notice.Data.ShipmentID)
}

func TestTransition_Failed(t *testing.T) {
	shipment := newShipment(entity.StatusOutForDelivery)
	shipment.AttemptCount = 1

	out, err := Transition(staff(t), shipment, entity.StatusFailed, Meta{Remarks: "Receiver not available"}, t0)
	require.NoError(t, err)

	assert.Equal(t, "Receiver not available", out.Shipment.FailureReason)
	assert.Equal(t, 2, out.Shipment.AttemptCount)
	assert.Equal(t, entity.EventFailedAttempt, out.Log().Status)
	assert.Equal(t, "Delivery attempt failed", out.Log().Description)
	assert.Equal(t, entity.DefaultUpdatedBy, out.Log().UpdatedBy)
	require.Len(t, out.Notices(), 1)
	assert.Equal(t, entity.NotificationShipmentFailed, out.Notices()[0].Type)
}

func TestTransition_Notifications(t *testing.T) {
	tests := []struct {
		status entity.ShipmentStatus
		typ    entity.NotificationType
		title  string
	}{
		{status: entity.StatusPending},
		{status: entity.StatusConfirmed},
		{status: entity.StatusPickedUp, typ: entity.NotificationShipmentPicked, title: "Shipment PICKED UP"},
		{status: entity.StatusInTransit, typ: entity.NotificationShipmentInTransit, title: "Shipment IN TRANSIT"},
		{status: entity.StatusOutForDelivery},
		{status: entity.StatusDelivered, typ: entity.NotificationShipmentDelivered, title: "Shipment DELIVERED"},
		{status: entity.StatusFailed, typ: entity.NotificationShipmentFailed, title: "Shipment FAILED"},
		{status: entity.StatusReturned},
		{status: entity.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			out, err := Transition(staff(t), newShipment(entity.StatusPending), tt.status, Meta{}, t0)
			require.NoError(t, err)

			assert.Equal(t, EffectAppendLog, out.Effects[0].Kind)
			assert.Equal(t, StatusDescription(tt.status), out.Log().Description)

			notices := out.Notices()
			if tt.typ == "" {
				assert.Empty(t, notices)
				assert.Len(t, out.Effects, 1)

				return
			}
			require.Len(t, notices, 1)
			assert.Equal(t, tt.typ, notices[0].Type)
			assert.Equal(t, tt.title, notices[0].Title)
		})
	}
}

func TestTransition_AnyToAny(t *testing.T) {
	op := staff(t)
	for _, from := range entity.AllShipmentStatuses {
		for _, to := range entity.AllShipmentStatuses {
			out, err := Transition(op, newShipment(from), to, Meta{}, t0)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, out.Shipment.Status)
		}
	}
}

func TestSimulate_WalksToDelivered(t *testing.T) {
	shipment := newShipment(entity.StatusPending)
	pick := DefaultHubs().Picker(fixedIntN(2))

	var logs []*entity.TrackingLogEntry
	now := t0
	for range 5 {
		out, err := Simulate(shipment, pick, now)
		require.NoError(t, err)
		require.Len(t, out.Effects, 1)
		logs = append(logs, out.Log())
		shipment = *out.Shipment
		now = now.Add(time.Minute)
	}

	assert.Equal(t, entity.StatusDelivered, shipment.Status)
	require.NotNil(t, shipment.ActualDeliveryDate)
	require.Len(t, logs, 5)

	wantEvents := []entity.TrackingEvent{
		entity.EventConfirmed, entity.EventPickedUp, entity.EventInTransit, entity.EventOutForDelivery, entity.EventDelivered,
	}
	for i, l := range logs {
		assert.Equal(t, wantEvents[i], l.Status)
		assert.Equal(t, SimulationUpdatedBy, l.UpdatedBy)
		if i > 0 {
			assert.False(t, l.Timestamp.Before(logs[i-1].Timestamp))
		}
	}

	assert.Equal(t, "Order confirmed, awaiting pickup", logs[0].Description)
	assert.Equal(t, "Bangalore", logs[0].Location.City)
	assert.Equal(t, HubState, logs[0].Location.State)
	assert.NotNil(t, logs[0].Location.Coordinates)
	assert.Equal(t, "Package delivered successfully", logs[4].Description)
	assert.Equal(t, "Kochi", logs[4].Location.City)
	assert.Equal(t, "Kerala", logs[4].Location.State)
}

func TestSimulate_CannotProgress(t *testing.T) {
	for _, status := range []entity.ShipmentStatus{
		entity.StatusDelivered, entity.StatusFailed, entity.StatusReturned, entity.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			out, err := Simulate(newShipment(status), nil, t0)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domainerrors.ErrCannotProgress)
			assert.Equal(t, domainerrors.KindInvalidTransition, domainerrors.KindOf(err))
		})
	}
}

func TestGenesis(t *testing.T) {
	shipment := newShipment(entity.StatusPending)

	effects := Genesis(&shipment, "", t0)
	require.Len(t, effects, 2)

	log := effects[0].Log
	assert.Equal(t, entity.EventOrderCreated, log.Status)
	assert.Equal(t, GenesisDescription, log.Description)
	assert.Equal(t, "Pune", log.Location.City)
	assert.Equal(t, t0, log.Timestamp)

	notice := effects[1].Notice
	assert.Equal(t, entity.NotificationShipmentCreated, notice.Type)
	assert.Equal(t, "Shipment Created", notice.Title)
	assert.Equal(t, "Your shipment BLUTEST0001 has been created successfully", notice.Message)

	bulk := Genesis(&shipment, BulkGenesisDescription, t0)
	assert.Equal(t, BulkGenesisDescription, bulk[0].Log.Description)
}

func TestSchedulePickup(t *testing.T) {
	date := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)

	out, err := SchedulePickup(newShipment(entity.StatusPending), PickupRequest{
		Date:         date,
		TimeSlot:     "10:00-12:00",
		Instructions: "Call before arriving",
	}, t0)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, out.Shipment.Status)
	assert.Equal(t, date, *out.Shipment.PickupDate)
	assert.Equal(t, "Call before arriving", out.Shipment.SpecialInstructions)
	assert.Equal(t, entity.EventPickupScheduled, out.Log().Status)
	assert.Equal(t, "Pickup scheduled for 2026-02-03 10:00-12:00", out.Log().Description)

	_, err = SchedulePickup(newShipment(entity.StatusInTransit), PickupRequest{Date: date}, t0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidState)
	assert.Equal(t, domainerrors.KindInvalidState, domainerrors.KindOf(err))

	_, err = SchedulePickup(newShipment(entity.StatusPending), PickupRequest{}, t0)
	assert.Equal(t, domainerrors.KindInvalidInput, domainerrors.KindOf(err))
}

func TestCanDelete(t *testing.T) {
	for _, status := range entity.AllShipmentStatuses {
		shipment := newShipment(status)
		err := CanDelete(&shipment)
		if status == entity.StatusPending || status == entity.StatusCancelled {
			assert.NoError(t, err, status)

			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrShipmentNotDeletable, status)
		assert.Equal(t, domainerrors.KindInvalidState, domainerrors.KindOf(err))
	}
}

func TestNextTimestamp(t *testing.T) {
	assert.Equal(t, t0, NextTimestamp(t0, nil))

	earlier := &entity.TrackingLogEntry{Timestamp: t0.Add(-time.Hour)}
	assert.Equal(t, t0, NextTimestamp(t0, earlier))

	later := &entity.TrackingLogEntry{Timestamp: t0.Add(time.Second)}
	assert.Equal(t, later.Timestamp, NextTimestamp(t0, later))
}

func TestStatusDescription_Unknown(t *testing.T) {
	assert.Equal(t, "Status updated to misrouted", StatusDescription("misrouted"))
}
