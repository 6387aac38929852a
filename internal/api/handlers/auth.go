/**
 * @description
 * Auth API Handlers.
 * Registration and login, both returning a signed session token.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trx-sasta/backend/internal/logger"
	"github.com/trx-sasta/backend/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// CredentialsRequest defines the payload for register and login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Please enter all fields (email and password)."})
	}

	token, user, err := h.Service.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Please enter all fields (email and password)."})
		case errors.Is(err, services.ErrDuplicateAccount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "User already exists with this email."})
		default:
			logger.Error("Register: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Registration could not be completed. Please try again."})
		}
	}

	logger.Info("NEW USER REGISTERED: %s", user.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":   "User registered successfully.",
		"token": token,
	})
}

// Login verifies credentials and issues a fresh token
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Please enter all fields (email and password)."})
	}

	token, user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Please enter all fields (email and password)."})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid Credentials."})
		default:
			logger.Error("Login: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server Error during login."})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg":    "Login successful.",
		"token":  token,
		"userId": user.ID,
	})
}
