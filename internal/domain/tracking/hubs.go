package tracking

import (
	"courierhub/internal/domain/entity"
)

// HubState is recorded as the state of every transit hub waypoint.
const HubState = "Transit Hub"

// Hub is a sorting facility a simulated shipment passes through.
type Hub struct {
	City        string             `json:"city" yaml:"city"`
	Coordinates entity.Coordinates `json:"coordinates" yaml:"coordinates"`
}

// HubPool is the set of cities the simulator picks from.
type HubPool []Hub

// DefaultHubs is the pool used when none is configured.
func DefaultHubs() HubPool {
	return HubPool{
		{City: "Mumbai", Coordinates: entity.Coordinates{Lat: 19.0760, Lng: 72.8777}},
		{City: "Delhi", Coordinates: entity.Coordinates{Lat: 28.7041, Lng: 77.1025}},
		{City: "Bangalore", Coordinates: entity.Coordinates{Lat: 12.9716, Lng: 77.5946}},
		{City: "Chennai", Coordinates: entity.Coordinates{Lat: 13.0827, Lng: 80.2707}},
		{City: "Hyderabad", Coordinates: entity.Coordinates{Lat: 17.3850, Lng: 78.4867}},
	}
}

// HubPicker chooses the hub for the next simulated step.
type HubPicker func() Hub

// Picker returns a HubPicker drawing uniformly from the pool. An empty pool falls back to DefaultHubs.
func (p HubPool) Picker(intN IntN) HubPicker {
	pool := p
	if len(pool) == 0 {
		pool = DefaultHubs()
	}
	if intN == nil {
		intN = DefaultIntN
	}

	return func() Hub {
		return pool[intN(len(pool))]
	}
}

// Location converts the hub into a tracking location.
func (h Hub) Location() entity.Location {
	coords := h.Coordinates

	return entity.Location{
		City:        h.City,
		State:       HubState,
		Coordinates: &coords,
	}
}
