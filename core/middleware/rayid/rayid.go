package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the RayID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber.Ctx locals key holding the RayID.
const LocalsKey = "ray_id"

// New returns a middleware assigning a RayID to every request.
// An incoming X-Ray-ID header is reused so callers can correlate retries.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.Get(HeaderName))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
