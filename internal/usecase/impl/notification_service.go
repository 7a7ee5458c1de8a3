package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "courierhub/internal/delivery/context"
	"courierhub/internal/domain/entity"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

const (
	defaultNotificationPageSize = 20
	maxNotificationPageSize     = 100
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pushService      service.PushService
	clock            clockz.Clock
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	PushService      service.PushService
	Clock            clockz.Clock
	Logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		pushService:      params.PushService,
		clock:            params.Clock,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Emit persists the in-app notification first; the push is best effort.
func (srv *notificationService) Emit(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, message string, data entity.NotificationData) error {
	notification := &entity.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: srv.clock.Now(),
	}
	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		return errors.Wrap(err, "failed to create notification")
	}

	srv.push(ctx, notification)

	return nil
}

func (srv *notificationService) push(ctx context.Context, notification *entity.Notification) {
	if srv.pushService == nil {
		return
	}

	user, err := srv.userRepo.FindByID(ctx, notification.UserID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load notification recipient", slog.String("userID", notification.UserID.String()), slog.Any("error", err))

		return
	}
	if user.PushToken == "" || !wantsPush(user, notification.Type) {
		return
	}

	data := map[string]string{
		"notification_id": notification.ID.String(),
		"type":            string(notification.Type),
	}
	if notification.Data.TrackingID != "" {
		data["tracking_id"] = notification.Data.TrackingID
	}
	if notification.Data.ShipmentID != nil {
		data["shipment_id"] = notification.Data.ShipmentID.String()
	}

	if err := srv.pushService.SendSingleNotification(ctx, user.PushToken, notification.Title, notification.Message, data); err != nil {
		srv.log(ctx).Warn("Failed to push notification",
			slog.String("userID", user.ID.String()),
			slog.String("type", string(notification.Type)),
			slog.Any("error", err),
		)
	}
}

// wantsPush honours the shipment updates preference for shipment notifications.
func wantsPush(user *entity.User, typ entity.NotificationType) bool {
	if !strings.HasPrefix(string(typ), "shipment_") {
		return true
	}

	return entity.ResolveSettings(user.Settings, nil).ShipmentUpdates
}

func (srv *notificationService) List(ctx context.Context, actor entity.Actor, input usecase.ListNotificationsInput) (*usecase.NotificationList, error) {
	page := input.PageRequest.Normalize(defaultNotificationPageSize, maxNotificationPageSize)

	notifications, total, err := srv.notificationRepo.ListByUser(ctx, actor.UserID, input.UnreadOnly, page.Limit, page.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	unread, err := srv.notificationRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unread notifications")
	}

	return &usecase.NotificationList{
		PageInfo:      usecase.NewPageInfo(len(notifications), total, page),
		UnreadCount:   unread,
		Notifications: notifications,
	}, nil
}

func (srv *notificationService) CountUnread(ctx context.Context, actor entity.Actor) (int64, error) {
	count, err := srv.notificationRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

func (srv *notificationService) MarkRead(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if err := srv.notificationRepo.MarkRead(ctx, actor.UserID, id); err != nil {
		return errors.Wrap(err, "failed to mark notification as read")
	}

	return nil
}

func (srv *notificationService) MarkAllRead(ctx context.Context, actor entity.Actor) (int64, error) {
	updated, err := srv.notificationRepo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark notifications as read")
	}

	return updated, nil
}

func (srv *notificationService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if err := srv.notificationRepo.Delete(ctx, actor.UserID, id); err != nil {
		return errors.Wrap(err, "failed to delete notification")
	}

	return nil
}
