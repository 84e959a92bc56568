// Package testutil holds shared helpers for handler tests: a preconfigured
// Fiber app, token minting, and request builders.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innerventory/internal/config"
	"innerventory/internal/handlers/httperr"
	"innerventory/internal/logger"
	"innerventory/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// CreateTestApp returns a Fiber app wired with the production error handler,
// with the logger initialized so handlers that log do not panic.
func CreateTestApp(t *testing.T) *fiber.App {
	t.Helper()

	_, err := logger.Init(config.Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)

	return fiber.New(fiber.Config{ErrorHandler: httperr.Handler})
}

// CreateTestValidator returns a validator that knows the "password" tag.
func CreateTestValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	require.NoError(t, crypto.RegisterPasswordValidator(v))
	return v
}

// CreateTestJWT signs an HS256 token carrying the same claims the auth
// service issues.
func CreateTestJWT(userID, email, role string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	})
	return token.SignedString(secret)
}

// SetupJWTMiddleware mirrors the production JWT middleware closely enough
// for handler tests: it fills the userID/userEmail/userRole locals and turns
// every token problem into a 401. The jwtware default would answer 400 for
// a missing token, which is not what the API promises.
func SetupJWTMiddleware(jwtSecret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(jwtSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			claims := c.Locals("user").(*jwt.Token).Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok {
				return httperr.Fail(httperr.E{Status: 401, Message: "Invalid token: missing user_id"})
			}
			userEmail, ok := claims["email"].(string)
			if !ok {
				return httperr.Fail(httperr.E{Status: 401, Message: "Invalid token: missing email"})
			}

			c.Locals("userID", userID)
			c.Locals("userEmail", userEmail)
			if role, ok := claims["role"].(string); ok {
				c.Locals("userRole", role)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.E{Status: 401, Message: "Unauthorized: " + err.Error()})
		},
	})
}

// CreateRateLimiter returns a limiter that answers 429 past maxRequests
// per duration window.
func CreateRateLimiter(maxRequests int, duration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: duration,
		LimitReached: func(c *fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	})
}

// CreateJSONRequest builds a request with body marshaled as JSON.
func CreateJSONRequest(method, url string, body any) *http.Request {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthenticatedRequest is CreateJSONRequest plus a bearer token.
func CreateAuthenticatedRequest(method, url string, body any, token string) *http.Request {
	req := CreateJSONRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
