package main

import (
	"courierhub/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.CourierModel{},
		model.ShipmentModel{},
		model.TrackingLogModel{},
		model.NotificationModel{},
		model.SystemLogModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
