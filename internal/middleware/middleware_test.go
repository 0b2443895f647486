package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentour/fantasy-golf/internal/config"
)

// newRoleApp builds a tiny Fiber app that fakes the Auth middleware by
// seeding memberRole directly, then guards one route with RequireRole.
func newRoleApp(role string, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("memberRole", role)
		}
		return c.Next()
	})
	app.Get("/guarded", RequireRole(allowed...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"matching role passes", "admin", []string{"admin"}, fiber.StatusOK},
		{"any of several roles passes", "member", []string{"admin", "member"}, fiber.StatusOK},
		{"wrong role is forbidden", "member", []string{"admin"}, fiber.StatusForbidden},
		{"missing role is forbidden", "", []string{"admin"}, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newRoleApp(tt.role, tt.allowed...)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireCronSecret(t *testing.T) {
	newApp := func(secret string) *fiber.App {
		app := fiber.New()
		cfg := &config.Config{CronSecret: secret}
		app.Get("/cron", RequireCronSecret(cfg), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("correct secret passes", func(t *testing.T) {
		app := newApp("s3cret")
		req := httptest.NewRequest("GET", "/cron", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		app := newApp("s3cret")
		req := httptest.NewRequest("GET", "/cron", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		app := newApp("s3cret")
		resp, err := app.Test(httptest.NewRequest("GET", "/cron", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unconfigured secret disables the route", func(t *testing.T) {
		app := newApp("")
		req := httptest.NewRequest("GET", "/cron", nil)
		req.Header.Set("Authorization", "Bearer anything")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
