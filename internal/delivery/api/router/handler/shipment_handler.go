package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/response"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/domain/tracking"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ShipmentHandlerParams holds dependencies for ShipmentHandler, injected by Fx.
type ShipmentHandlerParams struct {
	fx.In

	ShipmentUC usecase.ShipmentUsecase
	Logger     *slog.Logger
}

// ShipmentHandler serves bookings and their lifecycle.
type ShipmentHandler struct {
	uc     usecase.ShipmentUsecase
	logger *slog.Logger
}

// NewShipmentHandler is the constructor for ShipmentHandler.
func NewShipmentHandler(params ShipmentHandlerParams) *ShipmentHandler {
	return &ShipmentHandler{
		uc:     params.ShipmentUC,
		logger: params.Logger,
	}
}

// CreateShipmentRequest is the body of a booking. Party and package rules are enforced by the use case.
type CreateShipmentRequest struct {
	CourierID           uuid.UUID          `json:"courier_id" validate:"required"`
	Sender              entity.Party       `json:"sender"`
	Receiver            entity.Party       `json:"receiver"`
	Package             entity.Package     `json:"package"`
	ServiceType         entity.ServiceType `json:"service_type" validate:"omitempty,service_type"`
	PaymentMode         entity.PaymentMode `json:"payment_mode" validate:"omitempty,payment_mode"`
	CODAmount           float64            `json:"cod_amount" validate:"gte=0"`
	ShippingCost        *float64           `json:"shipping_cost" validate:"omitempty,gte=0"`
	InsuranceCost       float64            `json:"insurance_cost" validate:"gte=0"`
	PickupDate          *time.Time         `json:"pickup_date"`
	SpecialInstructions string             `json:"special_instructions" validate:"max=500"`
}

func (r CreateShipmentRequest) input() usecase.CreateShipmentInput {
	return usecase.CreateShipmentInput{
		CourierID:           r.CourierID,
		Sender:              r.Sender,
		Receiver:            r.Receiver,
		Package:             r.Package,
		ServiceType:         r.ServiceType,
		PaymentMode:         r.PaymentMode,
		CODAmount:           r.CODAmount,
		ShippingCost:        r.ShippingCost,
		InsuranceCost:       r.InsuranceCost,
		PickupDate:          r.PickupDate,
		SpecialInstructions: r.SpecialInstructions,
	}
}

// BulkCreateRequest is a bulk upload. Rows are validated one by one by the use case.
type BulkCreateRequest struct {
	Shipments []CreateShipmentRequest `json:"shipments" validate:"required,min=1"`
}

// UpdateShipmentRequest is the body of a shipment edit. Omitted fields are left untouched.
type UpdateShipmentRequest struct {
	Sender               *entity.Party       `json:"sender"`
	Receiver             *entity.Party       `json:"receiver"`
	Package              *entity.Package     `json:"package"`
	ServiceType          *entity.ServiceType `json:"service_type" validate:"omitempty,service_type"`
	PaymentMode          *entity.PaymentMode `json:"payment_mode" validate:"omitempty,payment_mode"`
	CODAmount            *float64            `json:"cod_amount" validate:"omitempty,gte=0"`
	ShippingCost         *float64            `json:"shipping_cost" validate:"omitempty,gte=0"`
	InsuranceCost        *float64            `json:"insurance_cost" validate:"omitempty,gte=0"`
	PickupDate           *time.Time          `json:"pickup_date"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date"`
	SpecialInstructions  *string             `json:"special_instructions" validate:"omitempty,max=500"`
}

// UpdateStatusRequest is an operator's status change.
type UpdateStatusRequest struct {
	Status   entity.ShipmentStatus `json:"status" validate:"required,shipment_status"`
	Location entity.Location       `json:"location"`
	Remarks  string                `json:"remarks" validate:"max=500"`
}

// SchedulePickupRequest books a pickup slot.
type SchedulePickupRequest struct {
	Date         time.Time `json:"pickup_date" validate:"required"`
	TimeSlot     string    `json:"time_slot" validate:"max=50"`
	Instructions string    `json:"instructions" validate:"max=500"`
}

// BulkSummary counts the rows of a bulk upload.
type BulkSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// BulkCreateResponse reports a bulk upload.
type BulkCreateResponse struct {
	Created []*entity.Shipment     `json:"created"`
	Errors  []usecase.BulkRowError `json:"errors"`
	Summary BulkSummary            `json:"summary"`
}

// ShipmentDetailResponse is a shipment with its history, newest first.
type ShipmentDetailResponse struct {
	Shipment     *entity.Shipment           `json:"shipment"`
	TrackingLogs []*entity.TrackingLogEntry `json:"tracking_logs"`
}

// CreateShipment books a shipment.
func (h *ShipmentHandler) CreateShipment(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	var req CreateShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shipment, err := h.uc.CreateShipment(c.Request().Context(), actor, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, shipment, "Shipment created successfully")
}

// BulkCreate books every valid row of an upload.
func (h *ShipmentHandler) BulkCreate(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	var req BulkCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inputs := make([]usecase.CreateShipmentInput, 0, len(req.Shipments))
	for _, row := range req.Shipments {
		inputs = append(inputs, row.input())
	}

	out, err := h.uc.BulkCreate(c.Request().Context(), actor, inputs)
	if err != nil {
		return errors.WithStack(err)
	}

	rowErrors := out.Errors
	if rowErrors == nil {
		rowErrors = []usecase.BulkRowError{}
	}

	return response.SuccessWithMessage(c, http.StatusCreated, BulkCreateResponse{
		Created: out.Created,
		Errors:  rowErrors,
		Summary: BulkSummary{
			Total:   len(inputs),
			Created: len(out.Created),
			Failed:  len(out.Errors),
		},
	}, fmt.Sprintf("%d of %d shipments created", len(out.Created), len(inputs)))
}

// ListShipments lists the caller's shipments.
func (h *ShipmentHandler) ListShipments(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	input := usecase.ListShipmentsInput{
		PageRequest: page,
		Status:      c.QueryParam("status"),
		Search:      c.QueryParam("search"),
	}
	if raw := c.QueryParam("courier_id"); raw != "" {
		courierID, err := uuid.Parse(raw)
		if err != nil {
			return domainerrors.ErrInvalidInput.WithDetails("invalid courier_id")
		}
		input.CourierID = &courierID
	}
	if input.From, err = dateQuery(c, "from", false); err != nil {
		return err
	}
	if input.To, err = dateQuery(c, "to", true); err != nil {
		return err
	}

	list, err := h.uc.ListShipments(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, list.Shipments, list.PageInfo)
}

// GetShipment returns a shipment with its history.
func (h *ShipmentHandler) GetShipment(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetShipment(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ShipmentDetailResponse{
		Shipment:     detail.Shipment,
		TrackingLogs: detail.TrackingLogs,
	})
}

// UpdateShipment edits a shipment.
func (h *ShipmentHandler) UpdateShipment(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shipment, err := h.uc.UpdateShipment(c.Request().Context(), actor, id, usecase.UpdateShipmentInput{
		Sender:               req.Sender,
		Receiver:             req.Receiver,
		Package:              req.Package,
		ServiceType:          req.ServiceType,
		PaymentMode:          req.PaymentMode,
		CODAmount:            req.CODAmount,
		ShippingCost:         req.ShippingCost,
		InsuranceCost:        req.InsuranceCost,
		PickupDate:           req.PickupDate,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		SpecialInstructions:  req.SpecialInstructions,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, shipment, "Shipment updated successfully")
}

// DeleteShipment removes a pending or cancelled shipment.
func (h *ShipmentHandler) DeleteShipment(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteShipment(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus applies an operator's status change.
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	op, err := tracking.AuthorizeOperator(actor)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shipment, err := h.uc.UpdateStatus(c.Request().Context(), op, id, usecase.UpdateStatusInput{
		Status:   req.Status,
		Location: req.Location,
		Remarks:  req.Remarks,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, shipment, "Shipment status updated to "+string(shipment.Status))
}

// SchedulePickup books the pickup of a shipment.
func (h *ShipmentHandler) SchedulePickup(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req SchedulePickupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shipment, err := h.uc.SchedulePickup(c.Request().Context(), actor, id, usecase.SchedulePickupInput{
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		Instructions: req.Instructions,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, shipment, "Pickup scheduled successfully")
}

// GenerateLabel renders and stores the shipping label.
func (h *ShipmentHandler) GenerateLabel(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	out, err := h.uc.GenerateLabel(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, map[string]any{
		"shipment":  out.Shipment,
		"label_url": out.Label.URL,
	}, "Label generated successfully")
}

// GetLabel streams a previously generated label.
func (h *ShipmentHandler) GetLabel(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	label, err := h.uc.GetLabel(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", label.Key))

	return c.Blob(http.StatusOK, label.ContentType, label.Data)
}
