package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CacheControl sets the Cache-Control header on successful GET responses
func CacheControl(value string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == fiber.MethodGet && c.Response().StatusCode() == fiber.StatusOK {
			c.Set(fiber.HeaderCacheControl, value)
		}

		return err
	}
}

// NoStore keeps personal data and receipts out of shared caches
func NoStore() fiber.Handler {
	return CacheControl("no-store")
}

// PrivateCache lets the browser reuse a response for maxAge
func PrivateCache(maxAge time.Duration) fiber.Handler {
	return CacheControl("private, max-age=" + strconv.Itoa(int(maxAge.Seconds())))
}
