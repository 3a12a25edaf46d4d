package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tishamal/righttoread/backend/controllers"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	analyticsController := controllers.NewAnalyticsController(db)

	api := app.Group("/api/analytics")
	api.Get("/overview", analyticsController.GetOverviewStats)
	api.Get("/schools/stats", analyticsController.GetSchoolsStats)
	api.Get("/schools/:id/timeline", analyticsController.GetSchoolTimeline)
	api.Get("/books/popular", analyticsController.GetPopularBooks)
	api.Get("/books/by-grade", analyticsController.GetBooksByGrade)
	api.Get("/books/:id/details", analyticsController.GetBookDetails)
	api.Get("/timeline", analyticsController.GetTimelineData)
	api.Get("/device/stats", analyticsController.GetDeviceStats)
	api.Get("/sync/logs", analyticsController.GetSyncLogs)
	api.Get("/sync/status", analyticsController.GetSyncStatus)
	api.Get("/pages/engagement", analyticsController.GetPageEngagement)
	api.Get("/reading-patterns", analyticsController.GetReadingPatterns)
}
