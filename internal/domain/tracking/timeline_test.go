package tracking

import (
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeline_Empty(t *testing.T) {
	_, err := BuildTimeline(nil)
	assert.ErrorIs(t, err, domainerrors.ErrTrackingNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestBuildTimeline_OrdersAndDecorates(t *testing.T) {
	mumbai := DefaultHubs()[0].Coordinates
	delhi := DefaultHubs()[1].Coordinates

	entries := []*entity.TrackingLogEntry{
		{TrackingID: "BLU1", Status: entity.EventInTransit, Timestamp: t0.Add(2 * time.Hour), Location: entity.Location{City: "Delhi", Coordinates: &delhi}},
		{TrackingID: "BLU1", Status: entity.EventOrderCreated, Timestamp: t0, Description: "created"},
		{TrackingID: "BLU1", Status: entity.EventPickedUp, Timestamp: t0.Add(time.Hour), Location: entity.Location{City: "Mumbai", Coordinates: &mumbai}},
		{TrackingID: "BLU1", Status: "teleported", Timestamp: t0.Add(3 * time.Hour)},
	}

	got, err := BuildTimeline(entries)
	require.NoError(t, err)

	assert.Equal(t, "BLU1", got.TrackingID)
	require.Len(t, got.Entries, 4)
	assert.Equal(t, entity.EventOrderCreated, got.Entries[0].Status)
	assert.Equal(t, "📦", got.Entries[0].Icon)
	assert.Equal(t, "created", got.Entries[0].Description)
	assert.Equal(t, "🚛", got.Entries[1].Icon)
	assert.Equal(t, "✈️", got.Entries[2].Icon)
	assert.Equal(t, DefaultIcon, got.Entries[3].Icon)
	assert.Equal(t, entity.TrackingEvent("teleported"), got.Latest().Status)

	assert.InDelta(t, 1150, got.DistanceKm, 20)

	assert.Equal(t, entity.EventInTransit, entries[0].Status, "input order must not change")
}

func TestBuildTimeline_NoCoordinates(t *testing.T) {
	got, err := BuildTimeline([]*entity.TrackingLogEntry{{Status: entity.EventOrderCreated, Timestamp: t0}})
	require.NoError(t, err)
	assert.Zero(t, got.DistanceKm)
}

func TestIcon(t *testing.T) {
	icons := map[entity.TrackingEvent]string{
		entity.EventOrderCreated:    "📦",
		entity.EventPickupScheduled: "📅",
		entity.EventPickedUp:        "🚛",
		entity.EventInTransit:       "✈️",
		entity.EventReachedHub:      "🏢",
		entity.EventOutForDelivery:  "🚚",
		entity.EventDelivered:       "✅",
		entity.EventFailedAttempt:   "❌",
		entity.EventReturned:        "↩️",
		entity.EventCancelled:       "🚫",
		entity.EventPending:         DefaultIcon,
		"":                          DefaultIcon,
	}

	for event, want := range icons {
		assert.Equal(t, want, Icon(event), event)
	}
}
