package middleware

import (
	"errors"

	"github.com/emrekzl/trackly-backend/internal/config"
	"github.com/emrekzl/trackly-backend/internal/dto"
	"github.com/emrekzl/trackly-backend/internal/models"
	"github.com/emrekzl/trackly-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const currentUserKey = "current_user"

// JWTProtected rejects requests whose bearer token is missing, malformed,
// badly signed or expired. An absent credential is unauthorized; a present
// but unusable one is forbidden.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: cfg.JWTAlgorithm, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Missing or malformed token",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Invalid or expired token",
			})
		},
	})
}

// RequireUser runs after JWTProtected: it enforces the access token type and
// resolves the subject to a live user row. A wrong-type token is forbidden;
// a subject whose account is gone must re-authenticate.
func RequireUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired token",
			})
		}

		user, err := authService.Authenticate(parsed.Raw)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Unauthorized",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired token",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user stored by RequireUser.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(currentUserKey).(*models.User)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
