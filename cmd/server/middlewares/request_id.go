package middlewares

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

// ULIDs sort by creation time, which makes chasing one request across
// interleaved log lines much easier than with random IDs.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// RequestID assigns every request a ULID, exposed both to handlers via
// ctx.Locals("requestID") and to the caller via the X-Request-Id header.
// An incoming X-Request-Id is trusted and passed through.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-Id")
		if id == "" {
			id = newRequestID()
		}

		c.Locals("requestID", id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}
