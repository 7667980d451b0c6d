package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/utils"
)

const userContextKey = "currentUserID"

// AuthTokenHeader carries a user's opaque auth token as an alternative to a
// bearer JWT.
const AuthTokenHeader = "X-Auth-Token"

// AuthMiddleware authenticates the request and loads the user ID into context.
// It accepts either a bearer JWT or an auth token resolved through users.
func AuthMiddleware(cfg *config.Config, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Get(AuthTokenHeader); token != "" {
			user, err := users.FindByAuthToken(c.UserContext(), token)
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid auth token")
			}
			c.Locals(userContextKey, user.ID)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uint, bool) {
	if id, ok := c.Locals(userContextKey).(uint); ok && id != 0 {
		return id, true
	}
	return 0, false
}
