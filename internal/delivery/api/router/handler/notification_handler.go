package handler

import (
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

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler.
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		uc:     params.NotificationUC,
		logger: params.Logger,
	}
}

// NotificationListResponse is a page of notifications with the unread total.
type NotificationListResponse struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// ListNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	list, err := h.uc.List(c.Request().Context(), actor, usecase.ListNotificationsInput{
		PageRequest: page,
		UnreadOnly:  c.QueryParam("unread") == "true",
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, NotificationListResponse{
		Notifications: list.Notifications,
		UnreadCount:   list.UnreadCount,
	}, list.PageInfo)
}

// CountUnread returns the number of unread notifications.
func (h *NotificationHandler) CountUnread(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	count, err := h.uc.CountUnread(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread_count": count})
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead marks every unread notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.MarkAllRead(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"updated": updated})
}

// DeleteNotification removes one notification.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	actor, err := middleware.MustActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
