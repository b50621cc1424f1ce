package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/simpleweather/backend/internal/display"
	"github.com/simpleweather/backend/internal/domain"
	"github.com/simpleweather/backend/internal/service"
	"github.com/simpleweather/backend/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	controller *service.WeatherController
	surface    *display.Surface
	repo       domain.DataRepository
}

// NewHandler creates a new handler
func NewHandler(controller *service.WeatherController, surface *display.Surface, repo domain.DataRepository) *Handler {
	return &Handler{
		controller: controller,
		surface:    surface,
		repo:       repo,
	}
}

// ChangeCityRequest is the body of PUT /api/v1/city
type ChangeCityRequest struct {
	City string `json:"city"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	storage := "ok"
	if err := h.repo.Health(ctx); err != nil {
		storage = err.Error()
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "simpleweather-backend",
		"version": "1.0.0",
		"storage": storage,
	})
}

// GetCity returns the stored city
func (h *Handler) GetCity(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"city":    h.controller.City(c.Context()),
	})
}

// ChangeCity stores a new city and starts fetching its weather
func (h *Handler) ChangeCity(c *fiber.Ctx) error {
	var req ChangeCityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.City) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "City must not be empty")
	}

	task := h.controller.ChangeCity(c.Context(), req.City)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"task_id": task.ID,
		"city":    task.City,
	})
}

// RefreshWeather reloads weather for the stored city
func (h *Handler) RefreshWeather(c *fiber.Ctx) error {
	task := h.controller.Load(c.Context())

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"task_id": task.ID,
		"city":    task.City,
	})
}

// GetWeather returns what the display surface currently shows
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	return c.JSON(domain.WeatherSnapshotResponse{
		Data:    h.surface.Snapshot(),
		Success: true,
	})
}

// GetHistoricalWeather returns renders within a time range
func (h *Handler) GetHistoricalWeather(c *fiber.Ctx) error {
	ctx := c.Context()

	hours := utils.ParseHours(c.QueryInt("hours", 24), 24, 720) // max 30 days

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.repo.GetHistoricalRenders(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
