package usecase

import (
	"context"
	"time"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// StatusCounts groups shipments by lifecycle phase.
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`    // pending or confirmed
	InTransit int `json:"in_transit"` // picked_up, in_transit or out_for_delivery
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"` // failed or returned
}

// CostSummary is the rounded spend over a set of shipments.
type CostSummary struct {
	Total   int64 `json:"total"`
	Average int64 `json:"average"`
}

// RecentShipment is the dashboard row of a shipment.
type RecentShipment struct {
	ID           uuid.UUID             `json:"id"`
	TrackingID   string                `json:"tracking_id"`
	Status       entity.ShipmentStatus `json:"status"`
	CourierName  string                `json:"courier_name"`
	ReceiverName string                `json:"receiver_name"`
	ReceiverCity string                `json:"receiver_city"`
	TotalCost    float64               `json:"total_cost"`
	CreatedAt    time.Time             `json:"created_at"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	Counts          StatusCounts     `json:"counts"`
	Costs           CostSummary      `json:"costs"`
	RecentShipments []RecentShipment `json:"recent_shipments"`
}

// CourierPerformance is one courier's record over the actor's shipments.
type CourierPerformance struct {
	CourierID      uuid.UUID `json:"courier_id"`
	CourierName    string    `json:"courier_name"`
	TotalShipments int       `json:"total_shipments"`
	DeliveredCount int       `json:"delivered_count"`
	TotalCost      float64   `json:"total_cost"`
	AvgCost        float64   `json:"avg_cost"`
	SuccessRate    float64   `json:"success_rate"`
}

// MonthlyCost is the spend of one calendar month.
type MonthlyCost struct {
	Month     string `json:"month"` // e.g. "Jan 2026"
	TotalCost int64  `json:"total_cost"`
	Shipments int    `json:"shipments"`
}

// MonthlySuccessRate is the delivered share of one calendar month.
type MonthlySuccessRate struct {
	Month       string  `json:"month"` // e.g. "Jan"
	SuccessRate float64 `json:"success_rate"`
	Total       int     `json:"total"`
}

// DeliveryTime is a courier's average days from booking to delivery.
type DeliveryTime struct {
	Courier string  `json:"courier"`
	AvgDays float64 `json:"avg_days"`
	Count   int     `json:"count"`
}

// AnalyticsUsecase aggregates shipments for reporting. Admins see every tenant, others their own.
type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, actor entity.Actor) (*Dashboard, error)
	CourierPerformance(ctx context.Context, actor entity.Actor) ([]CourierPerformance, error)
	// MonthlyCosts covers the last 12 months, oldest first.
	MonthlyCosts(ctx context.Context, actor entity.Actor) ([]MonthlyCost, error)
	// SuccessRate covers the last 6 months, oldest first.
	SuccessRate(ctx context.Context, actor entity.Actor) ([]MonthlySuccessRate, error)
	// DeliveryTime is sorted fastest first.
	DeliveryTime(ctx context.Context, actor entity.Actor) ([]DeliveryTime, error)
}
