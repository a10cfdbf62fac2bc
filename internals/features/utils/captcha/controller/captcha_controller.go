package controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "mwit_alumni_backend/internals/helpers"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
)

type verifyRequest struct {
	Token string `json:"token"`
}

type CaptchaController struct {
	Verifier helperTurnstile.Verifier
}

func NewCaptchaController(v helperTurnstile.Verifier) *CaptchaController {
	return &CaptchaController{Verifier: v}
}

// POST /api/verify-turnstile  body {token}
func (ctrl *CaptchaController) Verify(c *fiber.Ctx) error {
	var body verifyRequest
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		return helper.JsonValidationError(c, map[string]string{"token": "จำเป็นต้องกรอก"})
	}
	ok, err := ctrl.Verifier.Verify(c.UserContext(), body.Token, c.IP())
	if err != nil {
		slog.WarnContext(c.UserContext(), "turnstile verification failed", "err", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "ไม่สามารถตรวจสอบ CAPTCHA ได้ กรุณาลองใหม่")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "การยืนยัน CAPTCHA ไม่ผ่าน")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"success": true})
}
