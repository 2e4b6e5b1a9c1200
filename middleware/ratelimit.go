package middleware

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const rateWindow = 15 * time.Minute

// GeneralRateLimit applies to every route. Looser outside production so
// local dashboards can hammer the API.
func GeneralRateLimit() fiber.Handler {
	max := 1000
	if os.Getenv("APP_ENV") == "production" {
		max = 100
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: rateWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests from this IP, please try again later.",
			})
		},
	})
}

// AdminRateLimit is the stricter window on the login endpoints.
func AdminRateLimit() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: rateWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts, please try again later.",
			})
		},
	})
}
