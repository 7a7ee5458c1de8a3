package repository

import (
	"context"

	"courierhub/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationRepository defines the interface for in-app notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns a page of a user's notifications, newest first, with the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// MarkAllRead flags every unread notification of the user and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SystemLogRepository stores the audit trail of user and system actions.
type SystemLogRepository interface {
	Create(ctx context.Context, log *entity.SystemLog) error

	// List returns a page of logs matching the filter, newest first, with the total count.
	List(ctx context.Context, filter entity.SystemLogFilter) ([]*entity.SystemLog, int64, error)
}
