package impl

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/repository"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

const (
	recentShipmentsLimit = 10
	costHistoryMonths    = 12
	successHistoryMonths = 6
)

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	shipmentRepo repository.ShipmentRepository
	clock        clockz.Clock
	logger       *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	ShipmentRepo repository.ShipmentRepository
	Clock        clockz.Clock
	Logger       *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		shipmentRepo: params.ShipmentRepo,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// scope limits non-admins to their own shipments.
func scope(actor entity.Actor) entity.ShipmentFilter {
	if actor.IsAdmin() {
		return entity.ShipmentFilter{}
	}
	userID := actor.UserID

	return entity.ShipmentFilter{UserID: &userID}
}

func (srv *analyticsService) load(ctx context.Context, filter entity.ShipmentFilter) ([]*entity.Shipment, error) {
	shipments, err := srv.shipmentRepo.ListForAnalytics(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shipments for analytics")
	}

	return shipments, nil
}

func (srv *analyticsService) Dashboard(ctx context.Context, actor entity.Actor) (*usecase.Dashboard, error) {
	shipments, err := srv.load(ctx, scope(actor))
	if err != nil {
		return nil, err
	}

	var counts usecase.StatusCounts
	total := decimal.Zero
	for _, s := range shipments {
		counts.Total++
		switch s.Status {
		case entity.StatusPending, entity.StatusConfirmed:
			counts.Pending++
		case entity.StatusPickedUp, entity.StatusInTransit, entity.StatusOutForDelivery:
			counts.InTransit++
		case entity.StatusDelivered:
			counts.Delivered++
		case entity.StatusFailed, entity.StatusReturned:
			counts.Failed++
		}
		total = total.Add(decimal.NewFromFloat(s.TotalCost))
	}

	costs := usecase.CostSummary{Total: total.Round(0).IntPart()}
	if counts.Total > 0 {
		costs.Average = total.Div(decimal.NewFromInt(int64(counts.Total))).Round(0).IntPart()
	}

	newest := slices.Clone(shipments)
	slices.SortStableFunc(newest, func(a, b *entity.Shipment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(newest) > recentShipmentsLimit {
		newest = newest[:recentShipmentsLimit]
	}
	recent := make([]usecase.RecentShipment, 0, len(newest))
	for _, s := range newest {
		recent = append(recent, usecase.RecentShipment{
			ID:           s.ID,
			TrackingID:   s.TrackingID,
			Status:       s.Status,
			CourierName:  s.CourierName,
			ReceiverName: s.Receiver.Name,
			ReceiverCity: s.Receiver.City,
			TotalCost:    s.TotalCost,
			CreatedAt:    s.CreatedAt,
		})
	}

	return &usecase.Dashboard{Counts: counts, Costs: costs, RecentShipments: recent}, nil
}

// CourierPerformance groups by courier and sorts by volume, busiest first.
func (srv *analyticsService) CourierPerformance(ctx context.Context, actor entity.Actor) ([]usecase.CourierPerformance, error) {
	shipments, err := srv.load(ctx, scope(actor))
	if err != nil {
		return nil, err
	}

	type group struct {
		perf  usecase.CourierPerformance
		total decimal.Decimal
	}
	groups := make(map[uuid.UUID]*group)
	var order []uuid.UUID
	for _, s := range shipments {
		g, ok := groups[s.CourierID]
		if !ok {
			g = &group{
				perf:  usecase.CourierPerformance{CourierID: s.CourierID, CourierName: s.CourierName},
				total: decimal.Zero,
			}
			groups[s.CourierID] = g
			order = append(order, s.CourierID)
		}
		g.perf.TotalShipments++
		if s.Status == entity.StatusDelivered {
			g.perf.DeliveredCount++
		}
		g.total = g.total.Add(decimal.NewFromFloat(s.TotalCost))
	}

	out := make([]usecase.CourierPerformance, 0, len(order))
	for _, id := range order {
		g := groups[id]
		n := decimal.NewFromInt(int64(g.perf.TotalShipments))
		g.perf.TotalCost = g.total.InexactFloat64()
		g.perf.AvgCost = g.total.Div(n).Round(2).InexactFloat64()
		g.perf.SuccessRate = decimal.NewFromInt(int64(g.perf.DeliveredCount)).
			Mul(decimal.NewFromInt(100)).Div(n).InexactFloat64()
		out = append(out, g.perf)
	}
	slices.SortStableFunc(out, func(a, b usecase.CourierPerformance) int {
		return cmp.Compare(b.TotalShipments, a.TotalShipments)
	})

	return out, nil
}

// monthKey identifies a calendar month.
type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) compare(o monthKey) int {
	if c := cmp.Compare(k.year, o.year); c != 0 {
		return c
	}

	return cmp.Compare(k.month, o.month)
}

func keyOf(t time.Time) monthKey {
	t = t.UTC()

	return monthKey{year: t.Year(), month: t.Month()}
}

func (k monthKey) short() string {
	return k.month.String()[:3]
}

func (k monthKey) label() string {
	return fmt.Sprintf("%s %d", k.short(), k.year)
}

// since returns the shipments of the scope created within the last months months.
func (srv *analyticsService) since(ctx context.Context, actor entity.Actor, months int) ([]*entity.Shipment, error) {
	filter := scope(actor)
	from := srv.clock.Now().AddDate(0, -months, 0)
	filter.From = &from

	return srv.load(ctx, filter)
}

func (srv *analyticsService) MonthlyCosts(ctx context.Context, actor entity.Actor) ([]usecase.MonthlyCost, error) {
	shipments, err := srv.since(ctx, actor, costHistoryMonths)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		total decimal.Decimal
		count int
	}
	buckets := make(map[monthKey]*bucket)
	for _, s := range shipments {
		k := keyOf(s.CreatedAt)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{total: decimal.Zero}
			buckets[k] = b
		}
		b.total = b.total.Add(decimal.NewFromFloat(s.TotalCost))
		b.count++
	}

	out := make([]usecase.MonthlyCost, 0, len(buckets))
	for _, k := range sortedMonths(buckets) {
		b := buckets[k]
		out = append(out, usecase.MonthlyCost{
			Month:     k.label(),
			TotalCost: b.total.Round(0).IntPart(),
			Shipments: b.count,
		})
	}

	return out, nil
}

func (srv *analyticsService) SuccessRate(ctx context.Context, actor entity.Actor) ([]usecase.MonthlySuccessRate, error) {
	shipments, err := srv.since(ctx, actor, successHistoryMonths)
	if err != nil {
		return nil, err
	}

	type bucket struct{ total, delivered int }
	buckets := make(map[monthKey]*bucket)
	for _, s := range shipments {
		k := keyOf(s.CreatedAt)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.total++
		if s.Status == entity.StatusDelivered {
			b.delivered++
		}
	}

	out := make([]usecase.MonthlySuccessRate, 0, len(buckets))
	for _, k := range sortedMonths(buckets) {
		b := buckets[k]
		rate := decimal.NewFromInt(int64(b.delivered)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(b.total))).
			Round(1)
		out = append(out, usecase.MonthlySuccessRate{
			Month:       k.short(),
			SuccessRate: rate.InexactFloat64(),
			Total:       b.total,
		})
	}

	return out, nil
}

// DeliveryTime averages booking-to-delivery days per courier over delivered shipments.
func (srv *analyticsService) DeliveryTime(ctx context.Context, actor entity.Actor) ([]usecase.DeliveryTime, error) {
	filter := scope(actor)
	delivered := entity.StatusDelivered
	filter.Status = &delivered

	shipments, err := srv.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		days  decimal.Decimal
		count int
	}
	buckets := make(map[string]*bucket)
	var order []string
	day := decimal.NewFromInt(int64(24 * time.Hour))
	for _, s := range shipments {
		if s.ActualDeliveryDate == nil {
			continue
		}
		b, ok := buckets[s.CourierName]
		if !ok {
			b = &bucket{days: decimal.Zero}
			buckets[s.CourierName] = b
			order = append(order, s.CourierName)
		}
		elapsed := decimal.NewFromInt(int64(s.ActualDeliveryDate.Sub(s.CreatedAt)))
		b.days = b.days.Add(elapsed.Div(day))
		b.count++
	}

	out := make([]usecase.DeliveryTime, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		out = append(out, usecase.DeliveryTime{
			Courier: name,
			AvgDays: b.days.Div(decimal.NewFromInt(int64(b.count))).Round(1).InexactFloat64(),
			Count:   b.count,
		})
	}
	slices.SortStableFunc(out, func(a, b usecase.DeliveryTime) int {
		return cmp.Compare(a.AvgDays, b.AvgDays)
	})

	srv.log(ctx).Debug("Delivery time analysed", slog.Int("couriers", len(out)))

	return out, nil
}

func sortedMonths[V any](m map[monthKey]V) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, monthKey.compare)

	return keys
}
