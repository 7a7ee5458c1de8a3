package postgres

import "go.uber.org/fx"

// Module provides the PostgreSQL connection and every GORM-backed repository.
var Module = fx.Module("postgres",
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
