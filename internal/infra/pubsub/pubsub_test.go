package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courierhub/internal/domain/service"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.ShipmentEvent {
	return &service.ShipmentEvent{
		RequestID:  "req-1",
		ShipmentID: "2b7c8f4e-6a4d-4e35-9d8e-0c3a7a8f4b11",
		TrackingID: "BLUABC123WXYZ",
		UserID:     "6f1d2c1e-3a55-4d0b-8d7b-1a2b3c4d5e6f",
		Event:      "delivered",
		Status:     "delivered",
		OccurredAt: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true

	return nil
}

func TestKafkaPublisher_KeysByTrackingID(t *testing.T) {
	writer := &fakeKafkaWriter{}
	publisher := newKafkaPublisher(writer, newDiscardLogger())

	require.NoError(t, publisher.PublishShipmentEvent(context.Background(), testEvent()))
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, "BLUABC123WXYZ", string(msg.Key))

	var decoded service.ShipmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "BLUABC123WXYZ", decoded.TrackingID)
	assert.True(t, testEvent().OccurredAt.Equal(decoded.OccurredAt))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "req-1", headers["request_id"])
	assert.Equal(t, "delivered", headers["event"])

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeKafkaWriter{err: io.ErrClosedPipe}
	publisher := newKafkaPublisher(writer, newDiscardLogger())

	err := publisher.PublishShipmentEvent(context.Background(), testEvent())
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg

	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true

	return nil
}

func TestRabbitMQPublisher_RoutesByEvent(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newRabbitMQPublisher(ch, "courierhub.events", "shipment", newDiscardLogger())

	require.NoError(t, publisher.PublishShipmentEvent(context.Background(), testEvent()))

	assert.Equal(t, "courierhub.events", ch.exchange)
	assert.Equal(t, "shipment.delivered", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "req-1", ch.msg.CorrelationId)
	assert.Equal(t, "BLUABC123WXYZ", ch.msg.Headers["tracking_id"])

	require.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}

func TestLocalHTTPPublisher_PostsPushMessage(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.PublishShipmentEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "BLUABC123WXYZ", received.Message.Attributes["tracking_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.ShipmentEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "delivered", decoded.Event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.PublishShipmentEvent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "non-success status: 500")
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(newDiscardLogger())

	assert.NoError(t, publisher.PublishShipmentEvent(context.Background(), testEvent()))
	assert.NoError(t, publisher.Close())
}
