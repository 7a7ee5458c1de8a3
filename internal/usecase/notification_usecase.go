package usecase

import (
	"context"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ListNotificationsInput narrows a notification listing.
type ListNotificationsInput struct {
	PageRequest
	UnreadOnly bool
}

// NotificationList is a page of a user's notifications.
type NotificationList struct {
	PageInfo
	UnreadCount   int64
	Notifications []*entity.Notification
}

// NotificationUsecase defines in-app notifications and their push delivery.
type NotificationUsecase interface {
	// Emit stores the notification and pushes it to the user's device when one is registered.
	// Callers treat it as fire-and-forget.
	Emit(ctx context.Context, userID uuid.UUID, typ entity.NotificationType, title, message string, data entity.NotificationData) error

	List(ctx context.Context, actor entity.Actor, input ListNotificationsInput) (*NotificationList, error)
	CountUnread(ctx context.Context, actor entity.Actor) (int64, error)
	MarkRead(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor entity.Actor) (int64, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}
