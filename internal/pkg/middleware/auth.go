package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/token"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

// RequireAuth verifies the bearer token and loads the caller into the user
// context. Requests without a valid token are rejected with 401.
func RequireAuth(users repository.UserRepository, tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return apperr.Auth("Authentication required")
		}

		if err := authenticate(c, users, tokens, raw); err != nil {
			return err
		}
		return c.Next()
	}
}

// OptionalAuth loads the caller when a token is presented but lets
// anonymous requests through. A presented-but-invalid token is still
// rejected.
func OptionalAuth(users repository.UserRepository, tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return c.Next()
		}

		if err := authenticate(c, users, tokens, raw); err != nil {
			return err
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, users repository.UserRepository, tokens *token.Service, raw string) error {
	userID, err := tokens.Parse(raw)
	if err != nil {
		return apperr.Auth("Invalid authentication token")
	}

	// A token for a deleted user is no longer valid.
	user, err := users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Auth("Invalid authentication")
		}
		log.Errorf("auth middleware: user lookup failed: %v", err)
		return err
	}

	usercontext.Set(c, usercontext.UserContext{
		UserID:     user.ID,
		Username:   user.Username,
		IsLoggedIn: true,
	})
	return nil
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
