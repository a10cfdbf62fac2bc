package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookieName = "session"
	LocRawToken       = "raw_token"
)

// GetRawSessionToken returns the session JWT from:
// 1) Locals("raw_token") set by the auth middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "session"
func GetRawSessionToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); auth != "" {
		fields := strings.Fields(auth)
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			return strings.Trim(fields[1], "\"'")
		}
	}
	return strings.TrimSpace(c.Cookies(SessionCookieName))
}

func SetRawSessionToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
