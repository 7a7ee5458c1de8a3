package impl

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/domain/entity"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

type analyticsFixture struct {
	srv   usecase.AnalyticsUsecase
	store *memStore
	now   time.Time
	owner entity.Actor
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()

	clock := clockz.NewFakeClock()
	store := newMemStore()

	return &analyticsFixture{
		srv: NewAnalyticsService(AnalyticsServiceParams{
			ShipmentRepo: store.NewShipmentRepository(),
			Clock:        clock,
			Logger:       newDiscardLogger(),
		}),
		store: store,
		now:   clock.Now(),
		owner: businessActor(),
	}
}

func (f *analyticsFixture) add(userID uuid.UUID, courier string, status entity.ShipmentStatus, cost float64, createdAt time.Time) *entity.Shipment {
	return f.store.put(&entity.Shipment{
		TrackingID:   uuid.NewString(),
		UserID:       userID,
		CourierID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(courier)),
		CourierName:  courier,
		Receiver:     testParty("Pune"),
		Status:       status,
		ShippingCost: cost,
		TotalCost:    cost,
		CreatedAt:    createdAt,
	})
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.add(f.owner.UserID, "BlueDart", entity.StatusPending, 100.4, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusConfirmed, 100.4, f.now.Add(-time.Hour))
	f.add(f.owner.UserID, "BlueDart", entity.StatusInTransit, 100.4, f.now.Add(-2*time.Hour))
	f.add(f.owner.UserID, "Delhivery", entity.StatusDelivered, 50, f.now.Add(-3*time.Hour))
	f.add(f.owner.UserID, "Delhivery", entity.StatusReturned, 50, f.now.Add(-4*time.Hour))
	f.add(uuid.New(), "Delhivery", entity.StatusDelivered, 999, f.now)

	dashboard, err := f.srv.Dashboard(context.Background(), f.owner)

	require.NoError(t, err)
	assert.Equal(t, usecase.StatusCounts{Total: 5, Pending: 2, InTransit: 1, Delivered: 1, Failed: 1}, dashboard.Counts)
	assert.Equal(t, int64(401), dashboard.Costs.Total)
	assert.Equal(t, int64(80), dashboard.Costs.Average)
	require.Len(t, dashboard.RecentShipments, 5)
	assert.Equal(t, entity.StatusPending, dashboard.RecentShipments[0].Status)

	all, err := f.srv.Dashboard(context.Background(), adminActor())
	require.NoError(t, err)
	assert.Equal(t, 6, all.Counts.Total)
}

func TestAnalyticsService_Dashboard_Empty(t *testing.T) {
	f := newAnalyticsFixture(t)

	dashboard, err := f.srv.Dashboard(context.Background(), f.owner)

	require.NoError(t, err)
	assert.Zero(t, dashboard.Counts.Total)
	assert.Zero(t, dashboard.Costs.Average)
	assert.Empty(t, dashboard.RecentShipments)
}

func TestAnalyticsService_Dashboard_RecentIsCapped(t *testing.T) {
	f := newAnalyticsFixture(t)
	for i := range 12 {
		f.add(f.owner.UserID, "BlueDart", entity.StatusPending, 10, f.now.Add(-time.Duration(i)*time.Minute))
	}

	dashboard, err := f.srv.Dashboard(context.Background(), f.owner)

	require.NoError(t, err)
	assert.Len(t, dashboard.RecentShipments, 10)
}

func TestAnalyticsService_CourierPerformance(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.add(f.owner.UserID, "Delhivery", entity.StatusDelivered, 80, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 100, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 150, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusFailed, 50.5, f.now)

	perf, err := f.srv.CourierPerformance(context.Background(), f.owner)

	require.NoError(t, err)
	require.Len(t, perf, 2)
	assert.Equal(t, "BlueDart", perf[0].CourierName)
	assert.Equal(t, 3, perf[0].TotalShipments)
	assert.Equal(t, 2, perf[0].DeliveredCount)
	assert.InDelta(t, 300.5, perf[0].TotalCost, 0.001)
	assert.InDelta(t, 100.17, perf[0].AvgCost, 0.001)
	assert.InDelta(t, 66.6667, perf[0].SuccessRate, 0.001)
	assert.Equal(t, "Delhivery", perf[1].CourierName)
	assert.InDelta(t, 100.0, perf[1].SuccessRate, 0.001)
}

func TestAnalyticsService_MonthlyCosts(t *testing.T) {
	f := newAnalyticsFixture(t)
	earlier := f.now.AddDate(0, 0, -45)
	f.add(f.owner.UserID, "BlueDart", entity.StatusPending, 100, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusPending, 50.6, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 70, earlier)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 70, f.now.AddDate(-2, 0, 0))

	costs, err := f.srv.MonthlyCosts(context.Background(), f.owner)

	require.NoError(t, err)
	require.Len(t, costs, 2)
	assert.Equal(t, keyOf(earlier).label(), costs[0].Month)
	assert.Equal(t, int64(70), costs[0].TotalCost)
	assert.Equal(t, 1, costs[0].Shipments)
	assert.Equal(t, keyOf(f.now).label(), costs[1].Month)
	assert.Equal(t, int64(151), costs[1].TotalCost)
	assert.Equal(t, 2, costs[1].Shipments)
}

func TestAnalyticsService_SuccessRate(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 10, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusInTransit, 10, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusFailed, 10, f.now)
	f.add(f.owner.UserID, "BlueDart", entity.StatusDelivered, 10, f.now.AddDate(-1, 0, 0))

	rates, err := f.srv.SuccessRate(context.Background(), f.owner)

	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, keyOf(f.now).short(), rates[0].Month)
	assert.Len(t, rates[0].Month, 3)
	assert.InDelta(t, 33.3, rates[0].SuccessRate, 0.001)
	assert.Equal(t, 3, rates[0].Total)
}

func TestAnalyticsService_DeliveryTime(t *testing.T) {
	f := newAnalyticsFixture(t)
	deliver := func(courier string, days float64) {
		s := f.add(f.owner.UserID, courier, entity.StatusDelivered, 10, f.now)
		at := s.CreatedAt.Add(time.Duration(days * float64(24*time.Hour)))
		s.ActualDeliveryDate = &at
		f.store.put(s)
	}
	deliver("BlueDart", 3)
	deliver("BlueDart", 4)
	deliver("Delhivery", 2)
	f.add(f.owner.UserID, "Ecom", entity.StatusDelivered, 10, f.now)
	f.add(f.owner.UserID, "Ecom", entity.StatusInTransit, 10, f.now)

	times, err := f.srv.DeliveryTime(context.Background(), f.owner)

	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, usecase.DeliveryTime{Courier: "Delhivery", AvgDays: 2, Count: 1}, times[0])
	assert.Equal(t, usecase.DeliveryTime{Courier: "BlueDart", AvgDays: 3.5, Count: 2}, times[1])
}

func TestMonthKey_Labels(t *testing.T) {
	k := keyOf(time.Date(2026, time.January, 31, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800)))

	assert.Equal(t, "Jan", k.short())
	assert.Equal(t, "Jan 2026", k.label())
	assert.Equal(t, -1, k.compare(monthKey{year: 2026, month: time.February}))
}
