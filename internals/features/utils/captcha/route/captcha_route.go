package route

import (
	"github.com/gofiber/fiber/v2"

	"mwit_alumni_backend/internals/features/utils/captcha/controller"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	"mwit_alumni_backend/internals/middlewares"
)

func CaptchaRoutes(api fiber.Router, v helperTurnstile.Verifier) {
	ctrl := controller.NewCaptchaController(v)

	api.Post("/verify-turnstile", middlewares.PublicFormRateLimiter(), ctrl.Verify)
}
