// Package pubsub publishes committed shipment lifecycle events to a message broker.
package pubsub

import (
	"context"
	"log/slog"

	"courierhub/config"
	"courierhub/internal/domain/constants"
	"courierhub/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs.
func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishShipmentEvent(ctx context.Context, event *service.ShipmentEvent) error {
	p.logger.DebugContext(ctx, "[NoopPubSub] Event publishing disabled, skipping",
		slog.String("tracking_id", event.TrackingID),
		slog.String("event", event.Event),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// attributes returns the routing and tracing attributes of an event.
func attributes(event *service.ShipmentEvent) map[string]string {
	attrs := map[string]string{
		constants.AttrShipmentID: event.ShipmentID,
		constants.AttrTrackingID: event.TrackingID,
		constants.AttrEvent:      event.Event,
	}
	if event.RequestID != "" {
		attrs[constants.AttrRequestID] = event.RequestID
	}

	return attrs
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	// If PubSub is not configured, return a no-op publisher
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PubSubProviderNoop {
		logger.Info("PubSub not configured, using no-op publisher")

		return NewNoopPublisher(logger), nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	case constants.PubSubProviderKafka:
		kafkaCfg := params.Config.Kafka
		if kafkaCfg == nil || len(kafkaCfg.Brokers) == 0 || kafkaCfg.Topic == "" {
			return nil, errors.New("kafka brokers and topic are required for kafka provider")
		}
		logger.Info("Using Kafka publisher",
			slog.Any("brokers", kafkaCfg.Brokers),
			slog.String("topic", kafkaCfg.Topic),
		)

		publisher = NewKafkaPublisher(kafkaCfg.Brokers, kafkaCfg.Topic, logger)

	case constants.PubSubProviderRabbitMQ:
		rabbitCfg := params.Config.RabbitMQ
		if rabbitCfg == nil || rabbitCfg.URL == "" || rabbitCfg.Exchange == "" {
			return nil, errors.New("rabbitmq url and exchange are required for rabbitmq provider")
		}
		logger.Info("Using RabbitMQ publisher",
			slog.String("exchange", rabbitCfg.Exchange),
			slog.String("routing_key", rabbitCfg.RoutingKey),
		)

		publisher, err = NewRabbitMQPublisher(rabbitCfg.URL, rabbitCfg.Exchange, rabbitCfg.RoutingKey, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
