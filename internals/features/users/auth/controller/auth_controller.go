package controller

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/features/users/auth/service"
	userDTO "mwit_alumni_backend/internals/features/users/users/dto"
	"mwit_alumni_backend/internals/features/users/users/model"
	helper "mwit_alumni_backend/internals/helpers"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Verifier service.IdentityVerifier
	Service  *service.AuthService
}

func NewAuthController(db *gorm.DB, verifier service.IdentityVerifier) *AuthController {
	return &AuthController{
		DB:       db,
		Verifier: verifier,
		Service: &service.AuthService{
			DB:             db,
			AllowedDomains: configs.AllowedEmailDomains,
			AdminEmails:    configs.AdminEmails,
		},
	}
}

type googleLoginRequest struct {
	IDToken string  `json:"id_token" validate:"required"`
	Image   *string `json:"image" validate:"omitempty,url"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      userDTO.UserResponse `json:"user"`
}

// POST /api/auth/google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var body googleLoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	body.IDToken = strings.TrimSpace(body.IDToken)
	if errs := helper.ValidateStruct(&body); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	identity, err := ctrl.Verifier.Verify(body.IDToken)
	if err != nil {
		slog.InfoContext(c.UserContext(), "google login rejected", "err", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "โทเคน Google ไม่ถูกต้อง")
	}

	user, err := ctrl.Service.UpsertUser(c.UserContext(), identity, body.Image)
	if err != nil {
		if errors.Is(err, service.ErrDomainNotAllowed) {
			return helper.JsonError(c, fiber.StatusForbidden,
				"อนุญาตเฉพาะอีเมล @"+strings.Join(ctrl.Service.AllowedDomains, " หรือ @"))
		}
		if errors.Is(err, service.ErrIdentityConflict) {
			return helper.JsonError(c, fiber.StatusConflict, "บัญชี Google นี้ผูกกับผู้ใช้อื่นแล้ว กรุณาติดต่อผู้ดูแลระบบ")
		}
		return helper.FromError(c, err)
	}

	sess := &helperAuth.Session{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	token, err := helperAuth.IssueSession(sess, configs.JWTSecret, configs.SessionTTL)
	if err != nil {
		return helper.FromError(c, err)
	}
	setSessionCookie(c, token, sess.ExpiresAt)

	slog.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return helper.JsonOK(c, "เข้าสู่ระบบสำเร็จ", loginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      userDTO.FromModel(user),
	})
}

// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawSessionToken(c)
	if sess := helperAuth.SessionFromCtx(c); sess != nil && raw != "" {
		if err := helperAuth.Revoke(c.UserContext(), ctrl.DB, raw, configs.JWTSecret, sess.ExpiresAt); err != nil {
			return helper.FromError(c, err)
		}
	}
	clearSessionCookie(c)
	return helper.JsonOK(c, "ออกจากระบบแล้ว", nil)
}

// GET /api/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrSessionInvalid)
		}
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", userDTO.FromModel(&user))
}

func setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
