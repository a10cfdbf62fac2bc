package middlewares

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "mwit_alumni_backend/internals/helpers"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
)

const (
	TurnstileHeader    = "X-Turnstile-Token"
	TurnstileFormField = "turnstile_token"
)

func turnstileToken(c *fiber.Ctx) string {
	if t := strings.TrimSpace(c.Get(TurnstileHeader)); t != "" {
		return t
	}
	return strings.TrimSpace(c.FormValue(TurnstileFormField))
}

// TurnstileRequired rejects public form submissions without a valid captcha token.
func TurnstileRequired(v helperTurnstile.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := v.Verify(c.UserContext(), turnstileToken(c), c.IP())
		if err != nil {
			slog.WarnContext(c.UserContext(), "turnstile verification failed", "err", err)
			return helper.JsonError(c, fiber.StatusBadGateway, "ไม่สามารถตรวจสอบ CAPTCHA ได้ กรุณาลองใหม่")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "การยืนยัน CAPTCHA ไม่ผ่าน")
		}
		return c.Next()
	}
}
