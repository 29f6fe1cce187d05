package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/services"
)

// Message returned for any upstream AI failure. Upstream detail never
// crosses this boundary.
const aiRetryMessage = "Sorry, we couldn't retrieve AI-powered advice at this time. Please try again."

type AIHandler struct {
	ai *services.AIService
}

func NewAIHandler(ai *services.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

func (h *AIHandler) CareAdvice(c *fiber.Ctx) error {
	var req dto.CareAdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Question is required",
		})
	}

	advice, err := h.ai.CareAdvice(req.SeniorProfile, req.Question)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: aiRetryMessage,
		})
	}
	return c.JSON(advice)
}

func (h *AIHandler) FacilityChecklist(c *fiber.Ctx) error {
	var req dto.FacilityChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	checklist, err := h.ai.FacilityChecklist(req.Topic, req.SeniorProfile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: aiRetryMessage,
		})
	}
	return c.JSON(checklist)
}

func (h *AIHandler) AilmentEducation(c *fiber.Ctx) error {
	var req dto.AilmentEducationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Ailment == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Ailment name is required",
		})
	}

	education, err := h.ai.AilmentEducation(req.Ailment)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: aiRetryMessage,
		})
	}
	return c.JSON(dto.AilmentEducationResponse{Education: education})
}
