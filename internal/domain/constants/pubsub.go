// Package constants holds identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers selectable through pubsub.provider.
const (
	PubSubProviderNoop     = "noop"
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderKafka    = "kafka"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// Event attribute keys attached to every published shipment event.
const (
	AttrRequestID  = "request_id"
	AttrShipmentID = "shipment_id"
	AttrTrackingID = "tracking_id"
	AttrEvent      = "event"
)
