package handler

import (
	"log/slog"
	"net/http"

	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/response"
	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
	"courierhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves platform administration.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		uc:     params.AdminUC,
		logger: params.Logger,
	}
}

// UpdateUserRequest is an admin's account edit. Omitted fields are left untouched.
type UpdateUserRequest struct {
	Name     *string      `json:"name" validate:"omitempty,max=100"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Role     *entity.Role `json:"role" validate:"omitempty,role"`
	IsActive *bool        `json:"is_active"`
	Company  *string      `json:"company" validate:"omitempty,max=200"`
	Phone    *string      `json:"phone" validate:"omitempty,max=20"`
}

// UserDetailResponse is an account with its booking volume.
type UserDetailResponse struct {
	*UserResponse
	ShipmentCount int `json:"shipment_count"`
}

// Stats returns the platform summary.
func (h *AdminHandler) Stats(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.Stats(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// ListUsers lists every account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	list, err := h.uc.ListUsers(c.Request().Context(), actor, page)
	if err != nil {
		return errors.WithStack(err)
	}

	users := make([]*UserResponse, 0, len(list.Users))
	for _, u := range list.Users {
		users = append(users, newUserResponse(u))
	}

	return response.Paginated(c, users, list.PageInfo)
}

// GetUser returns one account.
func (h *AdminHandler) GetUser(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetUser(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserDetailResponse{
		UserResponse:  newUserResponse(detail.User),
		ShipmentCount: detail.ShipmentCount,
	})
}

// UpdateUser edits an account.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), actor, id, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
		Company:  req.Company,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, newUserResponse(user), "User updated successfully")
}

// ListLogs lists the audit trail, newest first.
func (h *AdminHandler) ListLogs(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	input := usecase.ListLogsInput{PageRequest: page}
	if raw := c.QueryParam("action"); raw != "" && raw != "all" {
		action := entity.LogAction(raw)
		input.Action = &action
	}
	if raw := c.QueryParam("module"); raw != "" && raw != "all" {
		module := entity.LogModule(raw)
		input.Module = &module
	}
	if input.Action != nil && !input.Action.IsValid() {
		return domainerrors.ErrInvalidInput.WithDetails("unknown action " + string(*input.Action))
	}
	if input.Module != nil && !input.Module.IsValid() {
		return domainerrors.ErrInvalidInput.WithDetails("unknown module " + string(*input.Module))
	}

	list, err := h.uc.ListLogs(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, list.Logs, list.PageInfo)
}
