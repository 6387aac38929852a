/**
 * @description
 * Session token middleware.
 * Accepts the token from either the 'x-auth-token' header or a standard
 * 'Authorization: Bearer' header, verifies it, and exposes the bound account
 * id to downstream handlers.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2: HTTP Context
 * - backend/internal/services: Token verification
 */

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trx-sasta/backend/internal/services"
)

const userIDKey = "user_id"

// Protected returns a handler that rejects requests without a valid session token.
func Protected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "No token found, authorization denied."})
		}

		userID, err := auth.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid or has expired."})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// extractToken checks the two supported transport conventions.
func extractToken(c *fiber.Ctx) string {
	if token := c.Get("x-auth-token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetUserID returns the authenticated account id from context
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user id not found in context")
	}
	return id, nil
}
