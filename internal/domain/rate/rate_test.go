package rate

import (
	"math"
	"testing"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourier(name string, base, perKg, fuel, cod float64) *entity.Courier {
	c := entity.CourierDraft{
		Name: name,
		Code: name[:3],
		Pricing: entity.PricingDraft{
			BaseRate:      base,
			WeightRate:    perKg,
			FuelSurcharge: &fuel,
			CODCharges:    &cod,
		},
	}.Resolve(nil)
	c.ID = uuid.New()

	return c
}

func TestCalculateRate_Scenarios(t *testing.T) {
	courier := newCourier("Alpha", 40, 25, 15, 35)

	tests := []struct {
		name    string
		service entity.ServiceType
		cod     bool
		want    int
	}{
		{name: "standard prepaid", service: entity.ServiceStandard, want: 104},
		{name: "overnight cod", service: entity.ServiceOvernight, cod: true, want: 242},
		{name: "express prepaid", service: entity.ServiceExpress, want: 155},
		{name: "economy prepaid", service: entity.ServiceEconomy, want: 83},
		{name: "empty service means standard", service: "", want: 104},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateRate(courier, 2, tt.service, tt.cod)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateRate_RegistrationDefaults(t *testing.T) {
	courier := entity.CourierDraft{Name: "Plain", Code: "PLN", Pricing: entity.PricingDraft{BaseRate: 100}}.Resolve(nil)

	express, err := CalculateRate(courier, 1, entity.ServiceExpress, false)
	require.NoError(t, err)
	assert.Equal(t, 150, express)

	cod, err := CalculateRate(courier, 1, entity.ServiceStandard, true)
	require.NoError(t, err)
	assert.Equal(t, 150, cod)
}

func TestCalculateRate_ZeroCODChargeIsKept(t *testing.T) {
	courier := newCourier("Alpha", 40, 25, 15, 0)
	require.Zero(t, courier.Pricing.CODCharges)

	prepaid, err := CalculateRate(courier, 2, entity.ServiceStandard, false)
	require.NoError(t, err)
	cod, err := CalculateRate(courier, 2, entity.ServiceStandard, true)
	require.NoError(t, err)

	assert.Equal(t, 104, prepaid)
	assert.Equal(t, 104, cod)
}

func TestCalculateRate_UsesStoredTariff(t *testing.T) {
	courier := &entity.Courier{Pricing: entity.CourierPricing{BaseRate: 100, ExpressMultiplier: 1.2, OvernightMultiplier: 1.8}}

	express, err := CalculateRate(courier, 1, entity.ServiceExpress, false)
	require.NoError(t, err)
	assert.Equal(t, 120, express)

	overnight, err := CalculateRate(courier, 1, entity.ServiceOvernight, true)
	require.NoError(t, err)
	assert.Equal(t, 180, overnight)
}

func TestCalculateRate_InvalidWeight(t *testing.T) {
	courier := newCourier("Alpha", 40, 25, 15, 35)

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1), MaxWeightKg + 0.1, 1e300} {
		_, err := CalculateRate(courier, w, entity.ServiceStandard, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidWeight)
		assert.Equal(t, domainerrors.KindInvalidInput, domainerrors.KindOf(err))
	}
}

func TestCalculateRate_MaxWeightAccepted(t *testing.T) {
	courier := newCourier("Alpha", 40, 25, 15, 35)

	got, err := CalculateRate(courier, MaxWeightKg, entity.ServiceStandard, false)
	require.NoError(t, err)
	assert.Equal(t, 28796, got)
}

func TestCalculateRate_UnknownServiceType(t *testing.T) {
	courier := newCourier("Alpha", 40, 25, 15, 35)

	_, err := CalculateRate(courier, 1, "teleport", false)
	assert.Equal(t, domainerrors.KindInvalidInput, domainerrors.KindOf(err))
}

func TestCalculateRate_MonotonicInWeight(t *testing.T) {
	couriers := []*entity.Courier{
		newCourier("Alpha", 40, 25, 15, 35),
		newCourier("Bravo", 55, 30, 18, 45),
		newCourier("Charlie", 35, 20, 12, 30),
		newCourier("Delta", 0, 0.01, 0, 0),
	}
	services := []entity.ServiceType{entity.ServiceEconomy, entity.ServiceStandard, entity.ServiceExpress, entity.ServiceOvernight}

	for _, c := range couriers {
		for _, s := range services {
			for _, cod := range []bool{false, true} {
				prev := math.MinInt
				for w := 0.1; w <= 50; w += 0.37 {
					got, err := CalculateRate(c, w, s, cod)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, got, prev, "courier %s service %s weight %.2f", c.Name, s, w)
					prev = got
				}
			}
		}
	}
}

func TestCalculateRate_OvernightNotCheaperThanStandard(t *testing.T) {
	couriers := []*entity.Courier{
		newCourier("Alpha", 40, 25, 15, 35),
		newCourier("Bravo", 55, 30, 18, 45),
		newCourier("Charlie", 35, 20, 12, 30),
	}

	for _, c := range couriers {
		for _, w := range []float64{0.2, 1, 2.5, 10, 75} {
			for _, cod := range []bool{false, true} {
				overnight, err := CalculateRate(c, w, entity.ServiceOvernight, cod)
				require.NoError(t, err)
				standard, err := CalculateRate(c, w, entity.ServiceStandard, cod)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, overnight, standard)
			}
		}
	}
}

func TestCalculateRate_Deterministic(t *testing.T) {
	courier := newCourier("Alpha", 40.7, 25.3, 15.5, 35)

	first, err := CalculateRate(courier, 3.3, entity.ServiceExpress, true)
	require.NoError(t, err)
	for range 100 {
		again, err := CalculateRate(courier, 3.3, entity.ServiceExpress, true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEstimateDelivery(t *testing.T) {
	courier := &entity.Courier{Performance: entity.CourierPerformance{AvgDeliveryDays: 3}}
	oneDay := &entity.Courier{Performance: entity.CourierPerformance{AvgDeliveryDays: 1}}

	assert.Equal(t, 3, EstimateDelivery(courier, entity.ServiceStandard))
	assert.Equal(t, 2, EstimateDelivery(courier, entity.ServiceExpress))
	assert.Equal(t, 1, EstimateDelivery(courier, entity.ServiceOvernight))
	assert.Equal(t, 5, EstimateDelivery(courier, entity.ServiceEconomy))
	assert.Equal(t, 1, EstimateDelivery(oneDay, entity.ServiceExpress))
	assert.Equal(t, 1, EstimateDelivery(oneDay, entity.ServiceOvernight))
}
