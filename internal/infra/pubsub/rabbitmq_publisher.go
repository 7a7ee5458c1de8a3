package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"courierhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of amqp.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitMQPublisher implements EventPublisher on a durable topic exchange.
type rabbitMQPublisher struct {
	conn       *amqp.Connection
	channel    amqpChannel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// NewRabbitMQPublisher dials the broker and declares the exchange.
func NewRabbitMQPublisher(url, exchange, routingKey string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open rabbitmq channel")
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()

		return nil, errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}

	p := newRabbitMQPublisher(ch, exchange, routingKey, logger)
	p.conn = conn

	return p, nil
}

func newRabbitMQPublisher(ch amqpChannel, exchange, routingKey string, logger *slog.Logger) *rabbitMQPublisher {
	return &rabbitMQPublisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}
}

// PublishShipmentEvent publishes the event as a persistent JSON message.
// The routing key is <routingKey>.<event>, e.g. shipment.delivered.
func (p *rabbitMQPublisher) PublishShipmentEvent(ctx context.Context, event *service.ShipmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{}
	for k, v := range attributes(event) {
		headers[k] = v
	}

	key := event.Event
	if p.routingKey != "" {
		key = p.routingKey + "." + event.Event
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		Headers:       headers,
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: event.RequestID,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	}); err != nil {
		return errors.Wrap(err, "rabbitmq publish failed")
	}

	p.logger.DebugContext(ctx, "[RabbitMQ] Event published",
		slog.String("routing_key", key),
		slog.String("tracking_id", event.TrackingID),
	)

	return nil
}

// Close closes the channel and the connection.
func (p *rabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return errors.WithStack(err)
	}
	if p.conn != nil {
		return errors.WithStack(p.conn.Close())
	}

	return nil
}
