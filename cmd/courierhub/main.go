package main

import (
	"context"
	"log/slog"
	"os"

	"courierhub/config"
	"courierhub/internal/delivery"
	"courierhub/internal/delivery/api"
	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/router/handler"
	"courierhub/internal/infra/auth"
	"courierhub/internal/infra/label"
	logs "courierhub/internal/infra/log"
	"courierhub/internal/infra/notification"
	"courierhub/internal/infra/persistence/mongo"
	"courierhub/internal/infra/persistence/postgres"
	"courierhub/internal/infra/pubsub"
	"courierhub/internal/usecase/impl"

	"github.com/zoobzio/clockz"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		injectInfra(cfg),
		injectStorage(cfg),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			logs.New,
			context.Background,
			func() clockz.Clock { return clockz.RealClock },
		),
	)
}

// injectStorage selects the persistence backend named by storage.driver.
func injectStorage(cfg *config.Config) fx.Option {
	if cfg.Storage.Driver == config.StorageDriverMongo {
		return mongo.Module
	}

	return postgres.Module
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			notification.NewPushService,
			label.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuditRecorder,
			impl.NewUserService,
			impl.NewCourierService,
			impl.NewNotificationService,
			impl.NewShipmentService,
			impl.NewTrackingService,
			impl.NewAnalyticsService,
			impl.NewSettingsService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCourierHandler,
			handler.NewShipmentHandler,
			handler.NewTrackingHandler,
			handler.NewAnalyticsHandler,
			handler.NewNotificationHandler,
			handler.NewSettingsHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
