package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mycarebay/carebay-backend/internal/dto"
	"github.com/mycarebay/carebay-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login resolves a caregiver account by email, creating it on first use.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.users.Resolve(req.Email, req.Name, req.Plan)
	if err != nil {
		if errors.Is(err, services.ErrEmailRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email and name are required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve user",
		})
	}

	return c.JSON(user)
}
