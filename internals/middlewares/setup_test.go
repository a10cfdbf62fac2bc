package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientIP(t *testing.T) string {
	t.Helper()
	app := fiber.New(AppConfig())
	app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.9")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestForwardedForIgnoredWithoutTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.NotEqual(t, "203.0.113.9", clientIP(t))
}

func TestForwardedForHonouredFromTrustedProxy(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "0.0.0.0/0")
	assert.Equal(t, "203.0.113.9", clientIP(t))
}
