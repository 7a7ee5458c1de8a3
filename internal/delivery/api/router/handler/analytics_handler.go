package handler

import (
	"context"
	"log/slog"
	"net/http"

	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/response"
	"courierhub/internal/domain/entity"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler serves the reporting endpoints.
type AnalyticsHandler struct {
	uc     usecase.AnalyticsUsecase
	logger *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler.
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc:     params.AnalyticsUC,
		logger: params.Logger,
	}
}

// report adapts an actor-scoped aggregation to an echo handler.
func report[T any](fn func(ctx context.Context, actor entity.Actor) (T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := middleware.MustActor(c)
		if err != nil {
			return err
		}

		data, err := fn(c.Request().Context(), actor)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, data)
	}
}

// Dashboard returns the landing page summary.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	return report(h.uc.Dashboard)(c)
}

// CourierPerformance returns per-courier delivery records.
func (h *AnalyticsHandler) CourierPerformance(c echo.Context) error {
	return report(h.uc.CourierPerformance)(c)
}

// MonthlyCosts returns the spend of the last 12 months.
func (h *AnalyticsHandler) MonthlyCosts(c echo.Context) error {
	return report(h.uc.MonthlyCosts)(c)
}

// SuccessRate returns the delivered share of the last 6 months.
func (h *AnalyticsHandler) SuccessRate(c echo.Context) error {
	return report(h.uc.SuccessRate)(c)
}

// DeliveryTime returns average delivery days per courier.
func (h *AnalyticsHandler) DeliveryTime(c echo.Context) error {
	return report(h.uc.DeliveryTime)(c)
}
