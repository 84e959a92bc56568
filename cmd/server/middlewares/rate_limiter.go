package middlewares

import (
	"strings"
	"time"

	"innerventory/internal/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// BuildRateLimiter allows max requests per expiration window and answers
// 429 past that. A max of zero or less disables limiting entirely, so
// callers can pass the configured value through without branching.
// Paths starting with any of exemptPrefixes bypass the limiter, which
// keeps health probes out of the sign-in bucket.
func BuildRateLimiter(max int, expiration time.Duration, exemptPrefixes ...string) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		Next: func(c *fiber.Ctx) bool {
			for _, p := range exemptPrefixes {
				if strings.HasPrefix(c.Path(), p) {
					return true
				}
			}
			return false
		},
		LimitReached: func(c *fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	})
}
