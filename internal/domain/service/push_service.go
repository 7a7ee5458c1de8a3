package service

import (
	"context"
)

// PushService defines the interface for mobile push notification delivery.
type PushService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error
}
