package tracking

import (
	"math"
	"slices"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DefaultIcon marks events without a dedicated icon.
const DefaultIcon = "📍"

// TimelineEntry is one presentable step of a shipment's history.
type TimelineEntry struct {
	Status      entity.TrackingEvent `json:"status"`
	Icon        string               `json:"icon"`
	Description string               `json:"description"`
	Location    entity.Location      `json:"location"`
	Remarks     string               `json:"remarks,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
	UpdatedBy   string               `json:"updated_by"`
}

// Timeline is a shipment's history in chronological order.
type Timeline struct {
	TrackingID string          `json:"tracking_id"`
	Entries    []TimelineEntry `json:"timeline"`
	DistanceKm float64         `json:"distance_km"` // Great-circle length over entries with coordinates.
}

// Latest returns the newest entry.
func (t *Timeline) Latest() TimelineEntry {
	return t.Entries[len(t.Entries)-1]
}

// BuildTimeline orders entries oldest first and decorates them for display.
// Reversing for latest-first views is left to the caller.
func BuildTimeline(entries []*entity.TrackingLogEntry) (*Timeline, error) {
	if len(entries) == 0 {
		return nil, domainerrors.ErrTrackingNotFound
	}

	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b *entity.TrackingLogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	timeline := &Timeline{
		TrackingID: ordered[0].TrackingID,
		Entries:    make([]TimelineEntry, 0, len(ordered)),
	}

	var (
		meters float64
		prev   *orb.Point
	)
	for _, e := range ordered {
		timeline.Entries = append(timeline.Entries, TimelineEntry{
			Status:      e.Status,
			Icon:        Icon(e.Status),
			Description: e.Description,
			Location:    e.Location,
			Remarks:     e.Remarks,
			Timestamp:   e.Timestamp,
			UpdatedBy:   e.UpdatedBy,
		})

		if c := e.Location.Coordinates; c != nil {
			p := orb.Point{c.Lng, c.Lat}
			if prev != nil {
				meters += geo.Distance(*prev, p)
			}
			prev = &p
		}
	}
	timeline.DistanceKm = math.Round(meters/100) / 10

	return timeline, nil
}

// Icon returns the display marker for an event.
func Icon(event entity.TrackingEvent) string {
	switch event {
	case entity.EventOrderCreated:
		return "📦"
	case entity.EventPickupScheduled:
		return "📅"
	case entity.EventPickedUp:
		return "🚛"
	case entity.EventInTransit:
		return "✈️"
	case entity.EventReachedHub:
		return "🏢"
	case entity.EventOutForDelivery:
		return "🚚"
	case entity.EventDelivered:
		return "✅"
	case entity.EventFailedAttempt:
		return "❌"
	case entity.EventReturned:
		return "↩️"
	case entity.EventCancelled:
		return "🚫"
	default:
		return DefaultIcon
	}
}
