package middleware

import (
	"strings"

	"agrichain/internal/model"
	"agrichain/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// RequireAuth validates the bearer token and stores the caller's
// identity in the request context for downstream handlers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(identityKey, claims.Identity())
		return c.Next()
	}
}

// CallerIdentity returns the identity RequireAuth stored for this
// request. The zero identity means the route was not protected.
func CallerIdentity(c *fiber.Ctx) model.Identity {
	if identity, ok := c.Locals(identityKey).(model.Identity); ok {
		return identity
	}
	return model.Identity{}
}
