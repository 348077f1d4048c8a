package handler

import (
	"agrichain/internal/middleware"
	"agrichain/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Register handles self-service user creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Registration successful", "user": user.Identity()})
}

// Login authenticates a user and issues a token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.UserID == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "User ID and password are required"})
	}

	response, err := h.authService.Login(req.UserID, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Logout acknowledges the client discarding its token. Sessions are
// stateless JWTs, so there is no server-side state to destroy; the
// token simply ages out.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the authenticated caller's profile
// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.CallerIdentity(c)
	user, err := h.authService.CurrentUser(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
