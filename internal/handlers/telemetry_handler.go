package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/services"
)

type TelemetryHandler struct {
	telemetry *services.TelemetryService
}

func NewTelemetryHandler(telemetry *services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry}
}

// LogErrors ingests a batch of browser-reported errors.
func (h *TelemetryHandler) LogErrors(c *fiber.Ctx) error {
	var req dto.ErrorLogRequest
	if err := c.BodyParser(&req); err != nil || req.Errors == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid error data",
		})
	}

	logged := h.telemetry.RecordErrors(req.Errors)
	return c.JSON(dto.TelemetryResponse{Success: true, Logged: logged})
}

// LogMetrics ingests a batch of browser performance samples.
func (h *TelemetryHandler) LogMetrics(c *fiber.Ctx) error {
	var req dto.PerformanceLogRequest
	if err := c.BodyParser(&req); err != nil || req.Metrics == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid metric data",
		})
	}

	logged := h.telemetry.RecordMetrics(req.Metrics)
	return c.JSON(dto.TelemetryResponse{Success: true, Logged: logged})
}
