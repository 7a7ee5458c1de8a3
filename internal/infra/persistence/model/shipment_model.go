package model

import (
	"time"

	"github.com/google/uuid"
)

// PartyModel is embedded twice in ShipmentModel, once per side of the consignment.
type PartyModel struct {
	Name    string `gorm:"type:varchar(100);not null"`
	Phone   string `gorm:"type:varchar(30);not null"`
	Email   string `gorm:"type:varchar(255)"`
	Address string `gorm:"type:text;not null"`
	City    string `gorm:"type:varchar(100);not null"`
	State   string `gorm:"type:varchar(100)"`
	Pincode string `gorm:"type:varchar(10);not null"`
}

// PackageModel is embedded in ShipmentModel with the package_ prefix.
type PackageModel struct {
	Weight        float64 `gorm:"type:numeric(10,3);not null"`
	Length        float64 `gorm:"type:numeric(10,2)"`
	Width         float64 `gorm:"type:numeric(10,2)"`
	Height        float64 `gorm:"type:numeric(10,2)"`
	Description   string  `gorm:"type:text"`
	DeclaredValue float64 `gorm:"type:numeric(12,2)"`
	Category      string  `gorm:"type:varchar(20);not null;default:'other'"`
}

// ShipmentModel mirrors the 'shipments' table.
type ShipmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TrackingID  string    `gorm:"type:varchar(32);unique;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierName string    `gorm:"type:varchar(100);not null"`

	Sender   PartyModel   `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver PartyModel   `gorm:"embedded;embeddedPrefix:receiver_"`
	Package  PackageModel `gorm:"embedded;embeddedPrefix:package_"`

	ServiceType   string  `gorm:"type:varchar(20);not null"`
	PaymentMode   string  `gorm:"type:varchar(20);not null"`
	CODAmount     float64 `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingCost  float64 `gorm:"type:numeric(12,2);not null"`
	InsuranceCost float64 `gorm:"type:numeric(12,2);not null;default:0"`
	TotalCost     float64 `gorm:"type:numeric(12,2);not null"`
	Status        string  `gorm:"type:varchar(30);not null;index"`

	PickupDate           *time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time

	SpecialInstructions string `gorm:"type:text"`
	LabelGenerated      bool   `gorm:"not null;default:false"`
	LabelURL            string `gorm:"type:text"`
	FailureReason       string `gorm:"type:text"`
	AttemptCount        int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "shipments"
}

// TrackingLogModel mirrors the append-only 'tracking_logs' table.
type TrackingLogModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingID  string    `gorm:"type:varchar(32);not null;index:idx_tracking_logs_tracking_ts,priority:1"`
	Status      string    `gorm:"type:varchar(30);not null"`
	Description string    `gorm:"type:text;not null"`
	City        string    `gorm:"type:varchar(100)"`
	State       string    `gorm:"type:varchar(100)"`
	Facility    string    `gorm:"type:varchar(100)"`
	Latitude    *float64  `gorm:"type:decimal(10,8)"`
	Longitude   *float64  `gorm:"type:decimal(11,8)"`
	Remarks     string    `gorm:"type:text"`
	UpdatedBy   string    `gorm:"type:varchar(255);not null;default:'System'"`
	Timestamp   time.Time `gorm:"not null;index:idx_tracking_logs_tracking_ts,priority:2"`
}

// TableName explicitly sets the table name for GORM.
func (TrackingLogModel) TableName() string {
	return "tracking_logs"
}
