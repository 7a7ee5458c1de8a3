// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"courierhub/internal/delivery/api/middleware"
	"courierhub/internal/delivery/api/router/handler"
	"courierhub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	CourierHandler      *handler.CourierHandler
	ShipmentHandler     *handler.ShipmentHandler
	TrackingHandler     *handler.TrackingHandler
	AnalyticsHandler    *handler.AnalyticsHandler
	NotificationHandler *handler.NotificationHandler
	SettingsHandler     *handler.SettingsHandler
	AdminHandler        *handler.AdminHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	courierHandler      *handler.CourierHandler
	shipmentHandler     *handler.ShipmentHandler
	trackingHandler     *handler.TrackingHandler
	analyticsHandler    *handler.AnalyticsHandler
	notificationHandler *handler.NotificationHandler
	settingsHandler     *handler.SettingsHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		courierHandler:      params.CourierHandler,
		shipmentHandler:     params.ShipmentHandler,
		trackingHandler:     params.TrackingHandler,
		analyticsHandler:    params.AnalyticsHandler,
		notificationHandler: params.NotificationHandler,
		settingsHandler:     params.SettingsHandler,
		adminHandler:        params.AdminHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)

		self := authGroup.Group("", r.authMiddleware.Authenticate)
		self.GET("/me", r.authHandler.Me)
		self.PUT("/profile", r.authHandler.UpdateProfile)
		self.PUT("/password", r.authHandler.ChangePassword)
		self.PUT("/push-token", r.authHandler.RegisterPushToken)
	}

	apiV1 := e.Group("/api/v1")

	// Tracking lookups are public
	trackingGroup := apiV1.Group("/tracking")
	{
		trackingGroup.GET("/samples", r.trackingHandler.Samples)
		trackingGroup.GET("/:trackingId", r.trackingHandler.Track)
		trackingGroup.GET("/:trackingId/timeline", r.trackingHandler.Timeline)
	}

	// Everything else requires authentication
	secured := apiV1.Group("", r.authMiddleware.Authenticate)
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)
	operatorsOnly := r.authMiddleware.RequireRole(entity.RoleStaff, entity.RoleAdmin)

	// Simulation moves real shipments, so it is gated like an explicit status change
	secured.POST("/tracking/:trackingId/simulate", r.trackingHandler.Simulate, operatorsOnly)

	couriersGroup := secured.Group("/couriers")
	{
		couriersGroup.GET("", r.courierHandler.ListCouriers)
		couriersGroup.GET("/:id", r.courierHandler.GetCourier)
		couriersGroup.POST("/compare", r.courierHandler.Compare)
		couriersGroup.POST("/recommend", r.courierHandler.Recommend)
		couriersGroup.POST("", r.courierHandler.CreateCourier, adminOnly)
		couriersGroup.PUT("/:id", r.courierHandler.UpdateCourier, adminOnly)
		couriersGroup.DELETE("/:id", r.courierHandler.DeleteCourier, adminOnly)
	}

	shipmentsGroup := secured.Group("/shipments")
	{
		shipmentsGroup.GET("", r.shipmentHandler.ListShipments)
		shipmentsGroup.POST("", r.shipmentHandler.CreateShipment)
		shipmentsGroup.POST("/bulk", r.shipmentHandler.BulkCreate)
		shipmentsGroup.GET("/:id", r.shipmentHandler.GetShipment)
		shipmentsGroup.PUT("/:id", r.shipmentHandler.UpdateShipment)
		shipmentsGroup.DELETE("/:id", r.shipmentHandler.DeleteShipment)
		shipmentsGroup.PUT("/:id/status", r.shipmentHandler.UpdateStatus, operatorsOnly)
		shipmentsGroup.POST("/:id/pickup", r.shipmentHandler.SchedulePickup)
		shipmentsGroup.POST("/:id/label", r.shipmentHandler.GenerateLabel)
		shipmentsGroup.GET("/:id/label", r.shipmentHandler.GetLabel)
	}

	analyticsGroup := secured.Group("/analytics")
	{
		analyticsGroup.GET("/dashboard", r.analyticsHandler.Dashboard)
		analyticsGroup.GET("/courier-performance", r.analyticsHandler.CourierPerformance)
		analyticsGroup.GET("/monthly-costs", r.analyticsHandler.MonthlyCosts)
		analyticsGroup.GET("/success-rate", r.analyticsHandler.SuccessRate)
		analyticsGroup.GET("/delivery-time", r.analyticsHandler.DeliveryTime)
	}

	notificationsGroup := secured.Group("/notifications")
	{
		notificationsGroup.GET("", r.notificationHandler.ListNotifications)
		notificationsGroup.GET("/unread-count", r.notificationHandler.CountUnread)
		notificationsGroup.PUT("/read-all", r.notificationHandler.MarkAllRead)
		notificationsGroup.PUT("/:id/read", r.notificationHandler.MarkRead)
		notificationsGroup.DELETE("/:id", r.notificationHandler.DeleteNotification)
	}

	settingsGroup := secured.Group("/settings")
	{
		settingsGroup.GET("", r.settingsHandler.GetSettings)
		settingsGroup.PUT("", r.settingsHandler.UpdateSettings)
		settingsGroup.POST("/reset", r.settingsHandler.ResetSettings)
		settingsGroup.GET("/export", r.settingsHandler.ExportData)
	}

	adminGroup := secured.Group("/admin", adminOnly)
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/users/:id", r.adminHandler.GetUser)
		adminGroup.PUT("/users/:id", r.adminHandler.UpdateUser)
		adminGroup.GET("/logs", r.adminHandler.ListLogs)
	}
}
