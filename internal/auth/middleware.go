package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/repository"
	apperrors "github.com/complainthub/complaint-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// AdminIdentity represents the authenticated admin attached to a request.
type AdminIdentity struct {
	Admin *domain.Admin
}

// AuthMiddleware validates bearer tokens and loads the admin principal.
type AuthMiddleware struct {
	tokens *TokenManager
	admins repository.AdminRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, admins repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, admins: admins}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	admin, err := m.admins.GetByID(c.Context(), claims.AdminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("admin not found")
		}
		return apperrors.ToDomainError(err)
	}

	c.Locals(principalKey, &AdminIdentity{Admin: admin})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated admin.
func IdentityFromContext(c *fiber.Ctx) (*AdminIdentity, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*AdminIdentity)
	return identity, ok
}
