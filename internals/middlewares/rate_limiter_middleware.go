package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "mwit_alumni_backend/internals/helpers"
)

func newLimiter(max int, exp time.Duration, msg string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(120, 1*time.Minute, "มีการเรียกใช้งานมากเกินไป กรุณาลองใหม่ภายหลัง")
}

// Stricter limiter for the login route
func LoginRateLimiter() fiber.Handler {
	return newLimiter(10, 1*time.Minute, "พยายามเข้าสู่ระบบบ่อยเกินไป กรุณารอสักครู่")
}

// Public forms (donation, contact message)
func PublicFormRateLimiter() fiber.Handler {
	return newLimiter(5, 5*time.Minute, "ส่งแบบฟอร์มบ่อยเกินไป กรุณารอสักครู่แล้วลองใหม่")
}
