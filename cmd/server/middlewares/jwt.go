package middlewares

import (
	"innerventory/internal/config"
	"innerventory/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT guards a route group. It checks the Bearer token signature against
// cfg.JWTSecret, requires the "user_id" and "email" claims, and copies them
// (plus the optional "role" claim) into the userID/userEmail/userRole locals
// for downstream handlers. Anything wrong with the token surfaces as 401
// through the global httperr handler.
func JWT(cfg config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Signature already verified by jwtware.
			claims, _ := c.Locals("user").(*jwt.Token).Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				return auth.ErrUnauthorized(auth.ErrInvalidTokenMissingUserID)
			}

			userEmail, ok := claims["email"].(string)
			if !ok || userEmail == "" {
				return auth.ErrUnauthorized(auth.ErrInvalidTokenMissingEmail)
			}

			c.Locals("userID", userID)
			c.Locals("userEmail", userEmail)
			if role, ok := claims["role"].(string); ok {
				c.Locals("userRole", role)
			}
			return c.Next()
		},

		// The jwtware default answers 400 for a missing token; always 401 here.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return auth.ErrUnauthorized(err)
		},
	})
}
