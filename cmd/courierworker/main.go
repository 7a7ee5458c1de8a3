package main

import (
	"context"
	"log/slog"
	"os"

	"courierhub/config"
	"courierhub/internal/delivery"
	"courierhub/internal/delivery/worker"
	"courierhub/internal/delivery/worker/handler"
	logs "courierhub/internal/infra/log"
	"courierhub/internal/infra/persistence/mongo"
	"courierhub/internal/infra/persistence/postgres"

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
		injectHandler(),
		injectDelivery(),
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

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
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
