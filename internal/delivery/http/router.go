package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpleweather/backend/internal/display"
	"github.com/simpleweather/backend/internal/domain"
	"github.com/simpleweather/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, controller *service.WeatherController, surface *display.Surface, repo domain.DataRepository) {
	handler := NewHandler(controller, surface, repo)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// City preference
		api.Get("/city", handler.GetCity)
		api.Put("/city", handler.ChangeCity)

		// Weather display
		api.Get("/weather", handler.GetWeather)
		api.Post("/weather/refresh", handler.RefreshWeather)
		api.Get("/weather/history", handler.GetHistoricalWeather)
	}
}

// ErrorHandler renders fiber errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
