// cron.go — Shared-secret check for the scheduled update routes.
// The cron routes are hit by an external scheduler, not by a person with a
// Clerk session, so they authenticate with a pre-shared secret instead of a JWT.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/opentour/fantasy-golf/internal/config"
)

// RequireCronSecret returns a middleware handler that admits a request only when
// its "Authorization: Bearer <secret>" header carries the configured CRON_SECRET.
//
// If no secret is configured the route is disabled outright (503) rather than
// left open — a blank secret must never mean "anyone may trigger a rescore".
// The comparison uses crypto/subtle so the check takes the same time whether
// the first byte or the last byte differs.
func RequireCronSecret(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.CronSecret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "cron secret not configured",
			})
		}

		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		presented := strings.TrimPrefix(authHeader, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.CronSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid cron secret",
			})
		}

		return c.Next()
	}
}
