package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complaint-service/internal/api/dto"
	"github.com/complainthub/complaint-service/internal/auth"
	"github.com/complainthub/complaint-service/internal/service"
	apperrors "github.com/complainthub/complaint-service/pkg/util/errorutil"
)

// AdminHandler exposes admin account endpoints.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Signup handles POST /admin/signup.
func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	var req dto.AdminCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	admin, err := h.auth.Signup(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"email": admin.Email},
	})
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminCredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password are required.", nil)
	}

	admin, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"admin":   dto.AdminResponse{ID: admin.ID, Email: admin.Email, CreatedAt: admin.CreatedAt},
			"session": dto.SessionResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /admin/me.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	admin := identity.Admin
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.AdminResponse{ID: admin.ID, Email: admin.Email, CreatedAt: admin.CreatedAt},
	})
}
