package mongo

import "go.uber.org/fx"

// Module provides the MongoDB store and every document-backed repository.
var Module = fx.Module("mongo",
	fx.Provide(
		New,
		NewTransactionManager,
		NewUserRepository,
		NewCourierRepository,
		NewShipmentRepository,
		NewTrackingLogRepository,
		NewNotificationRepository,
		NewSystemLogRepository,
	),
)
