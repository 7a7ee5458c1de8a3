package main

import (
	"context"

	"courierhub/config"
	"courierhub/internal/domain/lifecycle"
	"courierhub/internal/domain/repository"
	"courierhub/internal/domain/service"
	"courierhub/internal/infra/auth"
	"courierhub/internal/infra/label"
	logs "courierhub/internal/infra/log"
	"courierhub/internal/infra/notification"
	"courierhub/internal/infra/persistence/mongo"
	"courierhub/internal/infra/persistence/postgres"
	"courierhub/internal/infra/pubsub"
	"courierhub/internal/usecase"
	"courierhub/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

// appDeps is what the commands need from a running store.
type appDeps struct {
	fx.In

	Config    *config.Config
	Hasher    service.PasswordHasher
	UserRepo  repository.UserRepository
	Couriers  usecase.CourierUsecase
	Shipments usecase.ShipmentUsecase
	Tracking  usecase.TrackingUsecase
	Audit     usecase.AuditRecorder
	Clock     clockz.Clock
}

// withStore starts the storage and usecase graph, hands it to run and stops it again.
func withStore(ctx context.Context, run func(ctx context.Context, deps appDeps) error) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	storage := postgres.Module
	if cfg.Storage.Driver == config.StorageDriverMongo {
		storage = mongo.Module
	}

	var deps appDeps
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			logs.New,
			func() context.Context { return ctx },
			func() clockz.Clock { return clockz.RealClock },
		),
		storage,
		pubsub.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			notification.NewPushService,
			label.New,
			impl.NewAuditRecorder,
			impl.NewNotificationService,
			impl.NewCourierService,
			impl.NewShipmentService,
			impl.NewTrackingService,
		),
		fx.Invoke(func(d appDeps) { deps = d }),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	}()

	return run(ctx, deps)
}
