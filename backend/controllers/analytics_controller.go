package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tishamal/righttoread/backend/analytics"
	"github.com/tishamal/righttoread/backend/utils"
)

type AnalyticsController struct {
	Service *analytics.Service
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{Service: analytics.New(db)}
}

// respond сериализует результат движка или маппит его ошибку на статус
func respond(c *fiber.Ctx, data interface{}, err error) error {
	switch {
	case err == nil:
		return utils.Success(c, fiber.StatusOK, data)
	case errors.Is(err, analytics.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, analytics.ErrInvalidInput):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalServerError(c, "Failed to fetch analytics data")
	}
}

// GetOverviewStats возвращает сводку по всему флоту школ
func (ac *AnalyticsController) GetOverviewStats(c *fiber.Ctx) error {
	stats, err := ac.Service.Overview()
	return respond(c, stats, err)
}

// GetSchoolsStats возвращает рейтинг школ с пагинацией
func (ac *AnalyticsController) GetSchoolsStats(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	sortBy := c.Query("sortBy", "totalReadingTime")

	stats, err := ac.Service.SchoolStats(limit, offset, sortBy)
	return respond(c, stats, err)
}

// GetPopularBooks возвращает книги по суммарному времени чтения
func (ac *AnalyticsController) GetPopularBooks(c *fiber.Ctx) error {
	books, err := ac.Service.PopularBooks(c.QueryInt("limit", 0))
	return respond(c, books, err)
}

// GetBookDetails возвращает детализацию по одной книге
func (ac *AnalyticsController) GetBookDetails(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid book ID")
	}

	details, err := ac.Service.BookDetails(bookID)
	return respond(c, details, err)
}

// GetTimelineData возвращает посуточную динамику чтения
func (ac *AnalyticsController) GetTimelineData(c *fiber.Ctx) error {
	timeline, err := ac.Service.Timeline(c.Query("range", "30d"))
	return respond(c, timeline, err)
}

// GetSchoolTimeline возвращает посуточную динамику одной школы
func (ac *AnalyticsController) GetSchoolTimeline(c *fiber.Ctx) error {
	schoolID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid school ID")
	}

	timeline, err := ac.Service.SchoolTimeline(uint(schoolID), c.Query("range", "30d"))
	return respond(c, timeline, err)
}

// GetBooksByGrade возвращает распределение книг по классам
func (ac *AnalyticsController) GetBooksByGrade(c *fiber.Ctx) error {
	grades, err := ac.Service.BooksByGrade()
	return respond(c, grades, err)
}

// GetDeviceStats возвращает распределение устройств по платформам
func (ac *AnalyticsController) GetDeviceStats(c *fiber.Ctx) error {
	devices, err := ac.Service.DeviceStats()
	return respond(c, devices, err)
}

// GetSyncLogs возвращает последние записи синхронизации
func (ac *AnalyticsController) GetSyncLogs(c *fiber.Ctx) error {
	logs, err := ac.Service.SyncLogs(c.QueryInt("limit", 0))
	return respond(c, logs, err)
}

// GetSyncStatus возвращает состояние синхронизации по флоту
func (ac *AnalyticsController) GetSyncStatus(c *fiber.Ctx) error {
	status, err := ac.Service.SyncStatus()
	return respond(c, status, err)
}

// GetPageEngagement возвращает вовлеченность по страницам
func (ac *AnalyticsController) GetPageEngagement(c *fiber.Ctx) error {
	engagement, err := ac.Service.PageEngagement(c.QueryInt("bookId", 0))
	return respond(c, engagement, err)
}

// GetReadingPatterns возвращает паттерны чтения по часам и дням недели
func (ac *AnalyticsController) GetReadingPatterns(c *fiber.Ctx) error {
	patterns, err := ac.Service.ReadingPatterns()
	return respond(c, patterns, err)
}
