package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"annonsplats/internal/domain"
	"annonsplats/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, msg := bearerToken(c)
		if token == "" {
			return Unauthorized(msg)
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return c.Next()
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err == nil && user != nil {
			c.Locals(UserContextKey, user)
			c.Locals(UserIDContextKey, user.ID)
		}

		return c.Next()
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on websocket upgrades, so those may pass ?token= instead.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, ""
		}
		return "", "Missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func IsAuthenticated(c *fiber.Ctx) bool {
	return GetCurrentUserID(c) != uuid.Nil
}
