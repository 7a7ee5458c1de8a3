package usecase

import (
	"context"
	"time"

	"courierhub/internal/domain/entity"
)

// ExportStatistics summarises an account's shipments.
type ExportStatistics struct {
	TotalShipments int     `json:"total_shipments"`
	Delivered      int     `json:"delivered"`
	Pending        int     `json:"pending"`
	TotalSpent     float64 `json:"total_spent"`
}

// ExportedShipment is the exported row of a shipment.
type ExportedShipment struct {
	TrackingID  string                `json:"tracking_id"`
	Status      entity.ShipmentStatus `json:"status"`
	Courier     string                `json:"courier"`
	Sender      string                `json:"sender"`
	Receiver    string                `json:"receiver"`
	WeightKg    float64               `json:"weight"`
	Cost        float64               `json:"cost"`
	CreatedAt   time.Time             `json:"created_at"`
	DeliveredAt *time.Time            `json:"delivered_at,omitempty"`
}

// DataExport is a portable copy of an account's data.
type DataExport struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Company    string             `json:"company,omitempty"`
	ExportedAt time.Time          `json:"export_date"`
	Statistics ExportStatistics   `json:"statistics"`
	Shipments  []ExportedShipment `json:"shipments"`
}

// SettingsUsecase defines the management of a user's preferences.
type SettingsUsecase interface {
	// GetSettings resolves the effective settings. cached is the client's copy, used only
	// when the server holds none.
	GetSettings(ctx context.Context, actor entity.Actor, cached *entity.Settings) (entity.Settings, error)
	UpdateSettings(ctx context.Context, actor entity.Actor, patch entity.SettingsPatch) (entity.Settings, error)
	ResetSettings(ctx context.Context, actor entity.Actor) (entity.Settings, error)
	ExportData(ctx context.Context, actor entity.Actor) (*DataExport, error)
}
