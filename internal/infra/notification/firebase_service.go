// Package notification delivers push notifications to user devices.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"courierhub/config"
	"courierhub/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(ctx context.Context, projectID, credentialsPath string) (service.PushService, error) {
	var fbCfg *firebase.Config
	if projectID != "" {
		fbCfg = &firebase.Config{ProjectID: projectID}
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendSingleNotification sends a push notification to a single device token
func (s *firebaseService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return fmt.Errorf("device token rejected: %w", err)
		}

		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// disabledPushService drops pushes when Firebase is not configured.
type disabledPushService struct {
	logger *slog.Logger
}

func (s *disabledPushService) SendSingleNotification(ctx context.Context, _, title, _ string, _ map[string]string) error {
	s.logger.DebugContext(ctx, "Push disabled, skipping", slog.String("title", title))

	return nil
}

// NewPushService returns the Firebase sender when enabled, otherwise a sender that only logs.
func NewPushService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil || !cfg.Firebase.Enabled {
		logger.Info("Firebase not enabled, push notifications disabled")

		return &disabledPushService{logger: logger}, nil
	}

	return NewFirebaseService(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
}
