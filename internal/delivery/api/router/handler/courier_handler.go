package handler

import (
	"log/slog"
	"net/http"

	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/response"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/rate"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CourierHandlerParams holds dependencies for CourierHandler, injected by Fx.
type CourierHandlerParams struct {
	fx.In

	CourierUC usecase.CourierUsecase
	Logger    *slog.Logger
}

// CourierHandler serves the courier catalogue and rate shopping.
type CourierHandler struct {
	uc     usecase.CourierUsecase
	logger *slog.Logger
}

// NewCourierHandler is the constructor for CourierHandler.
func NewCourierHandler(params CourierHandlerParams) *CourierHandler {
	return &CourierHandler{
		uc:     params.CourierUC,
		logger: params.Logger,
	}
}

// CourierRequest describes a courier. Omitted tariff, coverage and performance
// fields take their defaults on create and keep their stored value on update.
type CourierRequest struct {
	Name        string                  `json:"name" validate:"required,max=100"`
	Code        string                  `json:"code" validate:"required,max=20"`
	Logo        string                  `json:"logo" validate:"omitempty,url"`
	Description string                  `json:"description" validate:"max=500"`
	IsActive    *bool                   `json:"is_active"`
	Pricing     entity.PricingDraft     `json:"pricing"`
	Coverage    entity.CoverageDraft    `json:"coverage"`
	Performance entity.PerformanceDraft `json:"performance"`
	Contact     entity.CourierContact   `json:"contact"`
}

func (r CourierRequest) draft() entity.CourierDraft {
	return entity.CourierDraft{
		Name:        r.Name,
		Code:        r.Code,
		Logo:        r.Logo,
		Description: r.Description,
		IsActive:    r.IsActive,
		Pricing:     r.Pricing,
		Coverage:    r.Coverage,
		Performance: r.Performance,
		Contact:     r.Contact,
	}
}

// QuoteRequest describes a parcel to price.
type QuoteRequest struct {
	WeightKg    float64            `json:"weight" validate:"gte=0,lte=1000"`
	ServiceType entity.ServiceType `json:"service_type" validate:"omitempty,service_type"`
	PaymentMode entity.PaymentMode `json:"payment_mode" validate:"omitempty,payment_mode"`
	FromPincode string             `json:"from_pincode" validate:"omitempty,numeric,len=6"`
	ToPincode   string             `json:"to_pincode" validate:"omitempty,numeric,len=6"`
	Priority    string             `json:"priority"`
}

func (r QuoteRequest) rateRequest() rate.Request {
	return rate.Request{
		WeightKg:    r.WeightKg,
		ServiceType: r.ServiceType,
		PaymentMode: r.PaymentMode,
		FromPincode: r.FromPincode,
		ToPincode:   r.ToPincode,
	}
}

// ListCouriers lists active couriers. Admins may pass include_inactive=true.
func (h *CourierHandler) ListCouriers(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	activeOnly := !(actor.IsAdmin() && c.QueryParam("include_inactive") == "true")
	couriers, err := h.uc.ListCouriers(c.Request().Context(), activeOnly)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, couriers)
}

// GetCourier returns one courier.
func (h *CourierHandler) GetCourier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	courier, err := h.uc.GetCourier(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, courier)
}

// CreateCourier registers a courier.
func (h *CourierHandler) CreateCourier(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	var req CourierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	courier, err := h.uc.CreateCourier(c.Request().Context(), actor, req.draft())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, courier, "Courier created successfully")
}

// UpdateCourier replaces a courier's description.
func (h *CourierHandler) UpdateCourier(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CourierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	courier, err := h.uc.UpdateCourier(c.Request().Context(), actor, id, req.draft())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, courier, "Courier updated successfully")
}

// DeleteCourier removes a courier.
func (h *CourierHandler) DeleteCourier(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCourier(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Compare quotes a parcel against every active courier.
func (h *CourierHandler) Compare(c echo.Context) error {
	var req QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comparison, err := h.uc.Compare(c.Request().Context(), req.rateRequest())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comparison)
}

// Recommend ranks the active couriers for a parcel by the requested priority.
func (h *CourierHandler) Recommend(c echo.Context) error {
	var req QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	priority := rate.ParsePriority(req.Priority)
	ranked, err := h.uc.Recommend(c.Request().Context(), req.rateRequest(), priority)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"priority":        priority,
		"recommendations": ranked,
	})
}
