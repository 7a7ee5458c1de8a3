package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pricing defaults applied when a courier is registered without them.
const (
	DefaultExpressMultiplier   = 1.5
	DefaultOvernightMultiplier = 2.0
	DefaultCODCharges          = 50
	DefaultAvgDeliveryDays     = 3
	DefaultSuccessRate         = 95
	DefaultAvgRating           = 4.0
)

// Courier is a shipping partner whose tariff and track record drive rate quotes.
type Courier struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Code        string             `json:"code"`
	Logo        string             `json:"logo,omitempty"`
	Description string             `json:"description,omitempty"`
	IsActive    bool               `json:"is_active"`
	Pricing     CourierPricing     `json:"pricing"`
	Coverage    CourierCoverage    `json:"coverage"`
	Performance CourierPerformance `json:"performance"`
	Contact     CourierContact     `json:"contact"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CourierPricing is the courier's tariff.
type CourierPricing struct {
	BaseRate            float64 `json:"base_rate"`            // Flat charge per shipment.
	WeightRate          float64 `json:"weight_rate"`          // Charge per kg.
	ExpressMultiplier   float64 `json:"express_multiplier"`   // Applied to express bookings.
	OvernightMultiplier float64 `json:"overnight_multiplier"` // Applied to overnight bookings.
	CODCharges          float64 `json:"cod_charges"`          // Flat cash-on-delivery handling charge.
	FuelSurcharge       float64 `json:"fuel_surcharge"`       // Percentage added after the service multiplier.
}

// CourierCoverage describes where a courier delivers.
type CourierCoverage struct {
	Domestic           bool     `json:"domestic"`
	International      bool     `json:"international"`
	ServicePincodes    []string `json:"service_pincodes,omitempty"`
	RestrictedPincodes []string `json:"restricted_pincodes,omitempty"`
}

// CourierPerformance holds the courier's historical delivery statistics.
type CourierPerformance struct {
	AvgDeliveryDays     int     `json:"avg_delivery_days"`
	DeliverySuccessRate float64 `json:"delivery_success_rate"` // Percentage.
	AvgRating           float64 `json:"avg_rating"`            // Out of 5.
}

// CourierContact holds support channels.
type CourierContact struct {
	SupportEmail string `json:"support_email,omitempty"`
	SupportPhone string `json:"support_phone,omitempty"`
	Website      string `json:"website,omitempty"`
}

// CourierRef is the short form of a courier embedded in quotes.
type CourierRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
	Logo string    `json:"logo,omitempty"`
}

// Ref returns the short form of the courier.
func (c *Courier) Ref() CourierRef {
	return CourierRef{ID: c.ID, Name: c.Name, Code: c.Code, Logo: c.Logo}
}

// CourierDraft is a courier as submitted for registration or update. A nil
// field was left out: it takes the registration default on create and keeps
// the stored value on update. An explicit zero is kept as zero.
type CourierDraft struct {
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	Logo        string           `json:"logo,omitempty"`
	Description string           `json:"description,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	Pricing     PricingDraft     `json:"pricing"`
	Coverage    CoverageDraft    `json:"coverage"`
	Performance PerformanceDraft `json:"performance"`
	Contact     CourierContact   `json:"contact"`
}

// PricingDraft is the submitted tariff. Base and weight rates are always required.
type PricingDraft struct {
	BaseRate            float64  `json:"base_rate"`
	WeightRate          float64  `json:"weight_rate"`
	ExpressMultiplier   *float64 `json:"express_multiplier,omitempty"`
	OvernightMultiplier *float64 `json:"overnight_multiplier,omitempty"`
	CODCharges          *float64 `json:"cod_charges,omitempty"`
	FuelSurcharge       *float64 `json:"fuel_surcharge,omitempty"`
}

// CoverageDraft is the submitted coverage. Nil pincode lists keep the stored ones.
type CoverageDraft struct {
	Domestic           *bool    `json:"domestic,omitempty"`
	International      *bool    `json:"international,omitempty"`
	ServicePincodes    []string `json:"service_pincodes,omitempty"`
	RestrictedPincodes []string `json:"restricted_pincodes,omitempty"`
}

// PerformanceDraft is the submitted track record.
type PerformanceDraft struct {
	AvgDeliveryDays     *int     `json:"avg_delivery_days,omitempty"`
	DeliverySuccessRate *float64 `json:"delivery_success_rate,omitempty"`
	AvgRating           *float64 `json:"avg_rating,omitempty"`
}

// NewCourierDefaults returns the values a courier is registered with when the draft leaves them out.
func NewCourierDefaults() *Courier {
	return &Courier{
		IsActive: true,
		Pricing: CourierPricing{
			ExpressMultiplier:   DefaultExpressMultiplier,
			OvernightMultiplier: DefaultOvernightMultiplier,
			CODCharges:          DefaultCODCharges,
		},
		Coverage: CourierCoverage{Domestic: true},
		Performance: CourierPerformance{
			AvgDeliveryDays:     DefaultAvgDeliveryDays,
			DeliverySuccessRate: DefaultSuccessRate,
			AvgRating:           DefaultAvgRating,
		},
	}
}

// Resolve builds the courier the draft describes on top of base. A nil base
// means a new registration and falls back to NewCourierDefaults.
// Identity and timestamps are carried over from base.
func (d CourierDraft) Resolve(base *Courier) *Courier {
	if base == nil {
		base = NewCourierDefaults()
	}

	c := &Courier{
		ID:          base.ID,
		Name:        strings.TrimSpace(d.Name),
		Code:        strings.ToUpper(strings.TrimSpace(d.Code)),
		Logo:        d.Logo,
		Description: d.Description,
		IsActive:    valueOr(d.IsActive, base.IsActive),
		Pricing: CourierPricing{
			BaseRate:            d.Pricing.BaseRate,
			WeightRate:          d.Pricing.WeightRate,
			ExpressMultiplier:   valueOr(d.Pricing.ExpressMultiplier, base.Pricing.ExpressMultiplier),
			OvernightMultiplier: valueOr(d.Pricing.OvernightMultiplier, base.Pricing.OvernightMultiplier),
			CODCharges:          valueOr(d.Pricing.CODCharges, base.Pricing.CODCharges),
			FuelSurcharge:       valueOr(d.Pricing.FuelSurcharge, base.Pricing.FuelSurcharge),
		},
		Coverage: CourierCoverage{
			Domestic:           valueOr(d.Coverage.Domestic, base.Coverage.Domestic),
			International:      valueOr(d.Coverage.International, base.Coverage.International),
			ServicePincodes:    base.Coverage.ServicePincodes,
			RestrictedPincodes: base.Coverage.RestrictedPincodes,
		},
		Performance: CourierPerformance{
			AvgDeliveryDays:     valueOr(d.Performance.AvgDeliveryDays, base.Performance.AvgDeliveryDays),
			DeliverySuccessRate: valueOr(d.Performance.DeliverySuccessRate, base.Performance.DeliverySuccessRate),
			AvgRating:           valueOr(d.Performance.AvgRating, base.Performance.AvgRating),
		},
		Contact:   d.Contact,
		CreatedAt: base.CreatedAt,
		UpdatedAt: base.UpdatedAt,
	}
	if d.Coverage.ServicePincodes != nil {
		c.Coverage.ServicePincodes = d.Coverage.ServicePincodes
	}
	if d.Coverage.RestrictedPincodes != nil {
		c.Coverage.RestrictedPincodes = d.Coverage.RestrictedPincodes
	}

	return c
}

// DraftOf returns a draft that sets every field of c explicitly.
func DraftOf(c *Courier) CourierDraft {
	return CourierDraft{
		Name:        c.Name,
		Code:        c.Code,
		Logo:        c.Logo,
		Description: c.Description,
		IsActive:    &c.IsActive,
		Pricing: PricingDraft{
			BaseRate:            c.Pricing.BaseRate,
			WeightRate:          c.Pricing.WeightRate,
			ExpressMultiplier:   &c.Pricing.ExpressMultiplier,
			OvernightMultiplier: &c.Pricing.OvernightMultiplier,
			CODCharges:          &c.Pricing.CODCharges,
			FuelSurcharge:       &c.Pricing.FuelSurcharge,
		},
		Coverage: CoverageDraft{
			Domestic:           &c.Coverage.Domestic,
			International:      &c.Coverage.International,
			ServicePincodes:    c.Coverage.ServicePincodes,
			RestrictedPincodes: c.Coverage.RestrictedPincodes,
		},
		Performance: PerformanceDraft{
			AvgDeliveryDays:     &c.Performance.AvgDeliveryDays,
			DeliverySuccessRate: &c.Performance.DeliverySuccessRate,
			AvgRating:           &c.Performance.AvgRating,
		},
		Contact: c.Contact,
	}
}

func valueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}

	return fallback
}
