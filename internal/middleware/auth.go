package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/utils"
)

const identityContextKey = "currentIdentity"

// Identity is the request-scoped authenticated caller. It is resolved once by
// the auth middleware and passed explicitly into services; nothing below the
// handler layer reaches back into ambient state.
type Identity struct {
	UserID uuid.UUID
	Roles  []string
}

// HasRole evaluates the caller's capability set.
func (id Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

// AuthMiddleware validates JWT tokens and stores the caller identity on the
// request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, roles, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(identityContextKey, Identity{UserID: userID, Roles: roles})
		return c.Next()
	}
}

// RequireRole rejects callers lacking the given role. Must run after
// AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		if !identity.HasRole(role) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	value := c.Locals(identityContextKey)
	if value == nil {
		return Identity{}, false
	}

	if id, ok := value.(Identity); ok {
		return id, true
	}

	return Identity{}, false
}
