package model

import (
	"time"

	"github.com/google/uuid"
)

// CourierModel mirrors the 'couriers' table. Tariff and performance figures are flattened into columns.
type CourierModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Code        string    `gorm:"type:varchar(20);unique;not null"`
	Logo        string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;index"`

	BaseRate            float64 `gorm:"type:numeric(12,2);not null"`
	WeightRate          float64 `gorm:"type:numeric(12,2);not null"`
	ExpressMultiplier   float64 `gorm:"type:numeric(6,2);not null;default:1.5"`
	OvernightMultiplier float64 `gorm:"type:numeric(6,2);not null;default:2"`
	CODCharges          float64 `gorm:"type:numeric(12,2);not null;default:50"`
	FuelSurcharge       float64 `gorm:"type:numeric(6,2);not null;default:0"`

	Coverage CoverageModel `gorm:"type:jsonb;serializer:json"`

	AvgDeliveryDays     int     `gorm:"not null;default:3"`
	DeliverySuccessRate float64 `gorm:"type:numeric(5,2);not null;default:95"`
	AvgRating           float64 `gorm:"type:numeric(3,2);not null;default:4"`

	SupportEmail string `gorm:"type:varchar(255)"`
	SupportPhone string `gorm:"type:varchar(30)"`
	Website      string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoverageModel is stored as JSON in the coverage column.
type CoverageModel struct {
	Domestic           bool     `json:"domestic"`
	International      bool     `json:"international"`
	ServicePincodes    []string `json:"service_pincodes,omitempty"`
	RestrictedPincodes []string `json:"restricted_pincodes,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (CourierModel) TableName() string {
	return "couriers"
}
