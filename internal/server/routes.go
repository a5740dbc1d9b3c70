package server

import (
	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	profileHandler *handlers.ProfileHandler,
	itemHandler *handlers.ItemHandler,
	goalHandler *handlers.GoalHandler,
	netWorthHandler *handlers.NetWorthHandler,
	statsHandler *handlers.StatsHandler,
	onboardingHandler *handlers.OnboardingHandler,
	metaHandler *handlers.MetaHandler,
	exportHandler *handlers.ExportHandler,
	eventsHandler *handlers.EventsHandler,
	apiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1", apiRateLimiter)

	api.GET("/meta", metaHandler.Get)

	api.GET("/profile", profileHandler.Get)
	api.PUT("/profile", profileHandler.Update)
	api.POST("/profile/income-sources", profileHandler.CreateIncomeSource)
	api.PUT("/profile/income-sources/:sourceId", profileHandler.UpdateIncomeSource)
	api.DELETE("/profile/income-sources/:sourceId", profileHandler.DeleteIncomeSource)

	api.GET("/items", itemHandler.List)
	api.POST("/items", itemHandler.Create)
	api.PUT("/items/:itemId", itemHandler.Update)
	api.DELETE("/items/:itemId", itemHandler.Delete)

	api.GET("/goals", goalHandler.List)
	api.POST("/goals", goalHandler.Create)
	api.PUT("/goals/:goalId", goalHandler.Update)
	api.DELETE("/goals/:goalId", goalHandler.Delete)
	api.GET("/goals/:goalId/progress", goalHandler.Progress)

	api.GET("/net-worth", netWorthHandler.Overview)
	api.GET("/net-worth/history", netWorthHandler.History)
	api.POST("/net-worth/snapshot", netWorthHandler.Snapshot)
	api.POST("/assets", netWorthHandler.CreateAsset)
	api.PUT("/assets/:assetId", netWorthHandler.UpdateAsset)
	api.DELETE("/assets/:assetId", netWorthHandler.DeleteAsset)
	api.POST("/liabilities", netWorthHandler.CreateLiability)
	api.PUT("/liabilities/:liabilityId", netWorthHandler.UpdateLiability)
	api.DELETE("/liabilities/:liabilityId", netWorthHandler.DeleteLiability)

	api.GET("/stats/overview", statsHandler.Overview)
	api.GET("/stats/spending-by-category", statsHandler.SpendingByCategory)
	api.GET("/stats/need-want", statsHandler.NeedWant)
	api.GET("/stats/retirement", statsHandler.Retirement)

	api.GET("/onboarding", onboardingHandler.Status)
	api.POST("/onboarding/complete", onboardingHandler.Complete)

	api.GET("/export/json", exportHandler.JSON)
	api.GET("/export/csv", exportHandler.CSV)

	api.GET("/events/stream", eventsHandler.Stream)
}
