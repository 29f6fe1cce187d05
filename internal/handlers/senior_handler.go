package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/services"
)

type SeniorHandler struct {
	seniors *services.SeniorService
}

func NewSeniorHandler(seniors *services.SeniorService) *SeniorHandler {
	return &SeniorHandler{seniors: seniors}
}

// ListByUser returns every senior aggregate owned by the given user.
func (h *SeniorHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "User ID is required",
		})
	}

	aggregates, err := h.seniors.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch seniors",
		})
	}
	return c.JSON(aggregates)
}

// Get returns one senior aggregate by id.
func (h *SeniorHandler) Get(c *fiber.Ctx) error {
	seniorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid senior ID",
		})
	}

	aggregate, err := h.seniors.Get(seniorID)
	if err != nil {
		if errors.Is(err, services.ErrSeniorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Senior not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch senior",
		})
	}
	return c.JSON(aggregate)
}

// Save creates or updates a senior aggregate.
func (h *SeniorHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveSeniorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Senior == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "User ID and senior data are required",
		})
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "User ID and senior data are required",
		})
	}

	result, err := h.seniors.Save(userID, req.Senior)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrSeniorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Senior not found or access denied",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save senior",
			})
		}
	}

	message := "Senior updated successfully"
	if result.Created {
		message = "Senior created successfully"
	}
	return c.JSON(dto.SaveSeniorResponse{
		Success:  true,
		SeniorID: result.SeniorID.String(),
		Message:  message,
	})
}

// Delete removes a senior aggregate after an ownership check.
func (h *SeniorHandler) Delete(c *fiber.Ctx) error {
	rawSeniorID := c.Query("seniorId")
	rawUserID := c.Query("userId")
	if rawSeniorID == "" || rawUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Senior ID and User ID are required",
		})
	}

	// Malformed ids cannot match anything; report them the same way as a
	// wrong owner so callers cannot enumerate valid ids.
	seniorID, seniorErr := uuid.Parse(rawSeniorID)
	userID, userErr := uuid.Parse(rawUserID)
	if seniorErr != nil || userErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Senior not found or access denied",
		})
	}

	if err := h.seniors.Delete(seniorID, userID); err != nil {
		if errors.Is(err, services.ErrSeniorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Senior not found or access denied",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete senior",
		})
	}

	return c.JSON(dto.DeleteSeniorResponse{
		Success: true,
		Message: "Senior deleted successfully",
	})
}
