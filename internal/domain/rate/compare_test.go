package rate

import (
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func seedCouriers() []*entity.Courier {
	delhivery := newCourier("Delhivery", 40, 25, 15, 35)
	delhivery.Performance = entity.CourierPerformance{AvgDeliveryDays: 3, DeliverySuccessRate: 94, AvgRating: 4.2}

	bluedart := newCourier("BlueDart", 55, 30, 18, 45)
	bluedart.Performance = entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 97, AvgRating: 4.5}
	bluedart.Coverage.International = true

	dtdc := newCourier("DTDC", 35, 20, 12, 30)
	dtdc.Performance = entity.CourierPerformance{AvgDeliveryDays: 4, DeliverySuccessRate: 91, AvgRating: 3.9}

	return []*entity.Courier{delhivery, bluedart, dtdc}
}

func TestCompare_SortsAndRecommends(t *testing.T) {
	couriers := seedCouriers()

	got, err := Compare(Request{WeightKg: 2}, couriers, fixedNow)
	require.NoError(t, err)
	require.Len(t, got.Quotes, 3)

	assert.Equal(t, entity.ServiceStandard, got.Request.ServiceType)
	assert.Equal(t, entity.PaymentPrepaid, got.Request.PaymentMode)

	assert.Equal(t, "DTDC", got.Quotes[0].Courier.Name)
	assert.Equal(t, 84, got.Quotes[0].Rate)
	assert.Equal(t, "Delhivery", got.Quotes[1].Courier.Name)
	assert.Equal(t, 104, got.Quotes[1].Rate)
	assert.Equal(t, "BlueDart", got.Quotes[2].Courier.Name)
	assert.Equal(t, 136, got.Quotes[2].Rate)

	for i := range got.Quotes {
		assert.LessOrEqual(t, got.Quotes[0].Rate, got.Quotes[i].Rate)
	}

	rec := got.Recommendations
	require.NotNil(t, rec.Cheapest)
	assert.Equal(t, got.Quotes[0], rec.Cheapest.Quote)
	assert.Equal(t, ReasonCheapest, rec.Cheapest.Reason)
	assert.Equal(t, "BlueDart", rec.Fastest.Courier.Name)
	assert.Equal(t, ReasonFastest, rec.Fastest.Reason)
	assert.Equal(t, "BlueDart", rec.Recommended.Courier.Name)
	assert.Equal(t, ReasonRecommended, rec.Recommended.Reason)

	assert.Equal(t, fixedNow.AddDate(0, 0, 2), rec.Fastest.EstimatedDate)
	assert.True(t, rec.Fastest.Features.International)
	assert.True(t, rec.Fastest.Features.Tracking)
}

func TestCompare_CheapestIsMinimum(t *testing.T) {
	couriers := seedCouriers()

	for _, w := range []float64{0.5, 1, 7.25, 30} {
		for _, s := range []entity.ServiceType{entity.ServiceEconomy, entity.ServiceExpress, entity.ServiceOvernight} {
			got, err := Compare(Request{WeightKg: w, ServiceType: s, PaymentMode: entity.PaymentCOD}, couriers, fixedNow)
			require.NoError(t, err)

			lowest := got.Quotes[0].Rate
			for _, q := range got.Quotes {
				lowest = min(lowest, q.Rate)
			}
			assert.Equal(t, lowest, got.Recommendations.Cheapest.Rate)
		}
	}
}

func TestCompare_TiesFollowCourierOrder(t *testing.T) {
	// Same rate for all three; the second is the slowest and worst rated.
	first := newCourier("First", 50, 10, 0, 0)
	first.Performance = entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 90, AvgRating: 4.5}
	second := newCourier("Second", 50, 10, 0, 0)
	second.Performance = entity.CourierPerformance{AvgDeliveryDays: 5, DeliverySuccessRate: 90, AvgRating: 3.0}
	third := newCourier("Third", 50, 10, 0, 0)
	third.Performance = entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 90, AvgRating: 4.5}

	got, err := Compare(Request{WeightKg: 1}, []*entity.Courier{first, second, third}, fixedNow)
	require.NoError(t, err)

	names := []string{got.Quotes[0].Courier.Name, got.Quotes[1].Courier.Name, got.Quotes[2].Courier.Name}
	assert.Equal(t, []string{"First", "Second", "Third"}, names)
	assert.Equal(t, "First", got.Recommendations.Fastest.Courier.Name)
	assert.Equal(t, "First", got.Recommendations.Recommended.Courier.Name)
}

func TestCompare_FastestTieUsesUnsortedOrder(t *testing.T) {
	// Pricey comes first in the input but sorts last.
	pricey := newCourier("Pricey", 200, 10, 0, 0)
	pricey.Performance = entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 90, AvgRating: 4.0}
	cheap := newCourier("Cheap", 20, 10, 0, 0)
	cheap.Performance = entity.CourierPerformance{AvgDeliveryDays: 2, DeliverySuccessRate: 90, AvgRating: 4.0}

	got, err := Compare(Request{WeightKg: 1}, []*entity.Courier{pricey, cheap}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Cheap", got.Recommendations.Cheapest.Courier.Name)
	assert.Equal(t, "Pricey", got.Recommendations.Fastest.Courier.Name)
	assert.Equal(t, "Pricey", got.Recommendations.Recommended.Courier.Name)
}

func TestCompare_Idempotent(t *testing.T) {
	couriers := seedCouriers()
	req := Request{WeightKg: 3.4, ServiceType: entity.ServiceExpress, PaymentMode: entity.PaymentCOD}

	a, err := Compare(req, couriers, fixedNow)
	require.NoError(t, err)
	b, err := Compare(req, couriers, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompare_NoCouriers(t *testing.T) {
	got, err := Compare(Request{WeightKg: 1}, nil, fixedNow)
	require.NoError(t, err)

	assert.Empty(t, got.Quotes)
	assert.Nil(t, got.Recommendations.Cheapest)
	assert.Nil(t, got.Recommendations.Fastest)
	assert.Nil(t, got.Recommendations.Recommended)
}

func TestCompare_InvalidRequest(t *testing.T) {
	couriers := seedCouriers()

	tests := []struct {
		name string
		req  Request
	}{
		{name: "zero weight", req: Request{}},
		{name: "negative weight", req: Request{WeightKg: -2}},
		{name: "unknown service", req: Request{WeightKg: 1, ServiceType: "rocket"}},
		{name: "unknown payment", req: Request{WeightKg: 1, PaymentMode: "barter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.req, couriers, fixedNow)
			require.Error(t, err)
			assert.Equal(t, domainerrors.KindInvalidInput, domainerrors.KindOf(err))
		})
	}
}

func TestScore(t *testing.T) {
	q := Quote{Rate: 104, EstimatedDays: 3, SuccessRate: 94, Rating: 4.2}

	assert.InDelta(t, 107.4, Score(PriorityCost, q), 1e-9)
	assert.InDelta(t, 152.0, Score(PrioritySpeed, q), 1e-9)
	assert.InDelta(t, 115.0, Score(PriorityReliability, q), 1e-9)
	assert.InDelta(t, 142.6, Score(PriorityBalanced, q), 1e-9)
	assert.Equal(t, Score(PriorityBalanced, q), Score("whatever", q))
}

func TestRecommend(t *testing.T) {
	couriers := seedCouriers()

	t.Run("speed favours the fastest courier", func(t *testing.T) {
		got, err := Recommend(Request{WeightKg: 2}, PrioritySpeed, couriers, fixedNow)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "BlueDart", got[0].Courier.Name)
		assert.Equal(t, "DTDC", got[2].Courier.Name)
	})

	t.Run("cost favours the cheapest courier", func(t *testing.T) {
		got, err := Recommend(Request{WeightKg: 2}, PriorityCost, couriers, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "DTDC", got[0].Courier.Name)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
		}
	})

	t.Run("quotes are prepaid and default to one kg", func(t *testing.T) {
		got, err := Recommend(Request{PaymentMode: entity.PaymentCOD}, PriorityReliability, couriers, fixedNow)
		require.NoError(t, err)

		for _, sq := range got {
			for _, c := range couriers {
				if c.ID != sq.Courier.ID {
					continue
				}
				want, err := CalculateRate(c, 1, entity.ServiceStandard, false)
				require.NoError(t, err)
				assert.Equal(t, want, sq.Rate)
			}
		}
	})

	t.Run("no couriers", func(t *testing.T) {
		got, err := Recommend(Request{WeightKg: 2}, PriorityBalanced, nil, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := Recommend(Request{WeightKg: -1}, PriorityBalanced, couriers, fixedNow)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidWeight)
	})
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityCost, ParsePriority("cost"))
	assert.Equal(t, PrioritySpeed, ParsePriority("speed"))
	assert.Equal(t, PriorityReliability, ParsePriority("reliability"))
	assert.Equal(t, PriorityBalanced, ParsePriority(""))
	assert.Equal(t, PriorityBalanced, ParsePriority("vibes"))
}
