package auth

import "github.com/gofiber/fiber/v2"

// Config holds the settings for the API key check.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
}

// New validates the X-API-Key header against the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		if c.Get("X-API-Key") != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
