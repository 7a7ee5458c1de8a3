package handler

import (
	"log/slog"
	"net/http"

	"courierhub/internal/delivery/api/response"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TrackingHandlerParams holds dependencies for TrackingHandler, injected by Fx.
type TrackingHandlerParams struct {
	fx.In

	TrackingUC usecase.TrackingUsecase
	Logger     *slog.Logger
}

// TrackingHandler serves the tracker, which needs no account.
type TrackingHandler struct {
	uc     usecase.TrackingUsecase
	logger *slog.Logger
}

// NewTrackingHandler is the constructor for TrackingHandler.
func NewTrackingHandler(params TrackingHandlerParams) *TrackingHandler {
	return &TrackingHandler{
		uc:     params.TrackingUC,
		logger: params.Logger,
	}
}

// Samples lists recent tracking IDs to try the tracker with.
func (h *TrackingHandler) Samples(c echo.Context) error {
	samples, err := h.uc.Samples(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, samples)
}

// Track returns the public view of a shipment.
func (h *TrackingHandler) Track(c echo.Context) error {
	result, err := h.uc.Track(c.Request().Context(), c.Param("trackingId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Timeline returns the ordered history of a shipment.
func (h *TrackingHandler) Timeline(c echo.Context) error {
	timeline, err := h.uc.Timeline(c.Request().Context(), c.Param("trackingId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, timeline)
}

// Simulate advances a shipment one step along the happy path.
func (h *TrackingHandler) Simulate(c echo.Context) error {
	result, err := h.uc.Simulate(c.Request().Context(), c.Param("trackingId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, result, "Status updated to "+string(result.NewStatus))
}
