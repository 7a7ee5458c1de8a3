// Package rate prices shipments across couriers and ranks the resulting quotes.
//
// Everything here is a pure function of the courier snapshot and the request,
// so quotes are recomputed on every call and never cached.
package rate

import (
	"math"
	"strconv"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
)

const economyMultiplier = 0.8

// MaxWeightKg is the heaviest parcel any courier tariff is quoted for.
const MaxWeightKg = 1000

// CalculateRate returns the whole-unit price the courier charges for the booking.
// The courier's stored tariff is used as is, so a zero COD charge means no COD surcharge.
func CalculateRate(courier *entity.Courier, weightKg float64, serviceType entity.ServiceType, isCOD bool) (int, error) {
	if err := validateWeight(weightKg); err != nil {
		return 0, err
	}

	pricing := courier.Pricing
	rate := pricing.BaseRate + weightKg*pricing.WeightRate

	switch serviceType.OrDefault() {
	case entity.ServiceExpress:
		rate *= pricing.ExpressMultiplier
	case entity.ServiceOvernight:
		rate *= pricing.OvernightMultiplier
	case entity.ServiceEconomy:
		rate *= economyMultiplier
	case entity.ServiceStandard:
	default:
		return 0, domainerrors.ErrInvalidInput.WithDetails("unknown service type " + strconv.Quote(string(serviceType)))
	}

	rate += rate * (pricing.FuelSurcharge / 100)

	if isCOD {
		rate += pricing.CODCharges
	}

	return roundHalfUp(rate), nil
}

// EstimateDelivery returns the number of days the courier needs for the service tier, never less than one.
func EstimateDelivery(courier *entity.Courier, serviceType entity.ServiceType) int {
	days := courier.Performance.AvgDeliveryDays
	if days <= 0 {
		days = entity.DefaultAvgDeliveryDays
	}

	switch serviceType.OrDefault() {
	case entity.ServiceExpress:
		days--
	case entity.ServiceOvernight:
		days = 1
	case entity.ServiceEconomy:
		days += 2
	case entity.ServiceStandard:
	}

	return max(days, 1)
}

func validateWeight(weightKg float64) error {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 || weightKg > MaxWeightKg {
		return domainerrors.ErrInvalidWeight.WithDetails(strconv.FormatFloat(weightKg, 'f', -1, 64))
	}

	return nil
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
