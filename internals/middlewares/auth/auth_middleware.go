package auth

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/configs"
	"mwit_alumni_backend/internals/constants"
	helper "mwit_alumni_backend/internals/helpers"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

// AuthRequired rejects requests without a valid, unrevoked session (401).
func AuthRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawSessionToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrLoginRequired)
		}
		sess, err := loadSession(c, db, raw)
		if err != nil {
			slog.DebugContext(c.UserContext(), "auth: rejected session", "path", c.Path(), "err", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrSessionInvalid)
		}
		storeSession(c, raw, sess)
		return c.Next()
	}
}

// OptionalAuth attaches the session when one is present and valid, and never rejects.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawSessionToken(c)
		if raw == "" {
			return c.Next()
		}
		if sess, err := loadSession(c, db, raw); err == nil {
			storeSession(c, raw, sess)
		}
		return c.Next()
	}
}

func loadSession(c *fiber.Ctx, db *gorm.DB, raw string) (*helperAuth.Session, error) {
	sess, err := helperAuth.ParseSession(raw, configs.JWTSecret)
	if err != nil {
		return nil, err
	}
	revoked, err := helperAuth.IsRevoked(c.UserContext(), db, raw, configs.JWTSecret)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, helperAuth.ErrInvalidToken
	}
	revoked, err = helperAuth.IsUserRevoked(c.UserContext(), db, sess)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, helperAuth.ErrInvalidToken
	}
	return sess, nil
}

func storeSession(c *fiber.Ctx, raw string, sess *helperAuth.Session) {
	helper.SetRawSessionToken(c, raw)
	c.Locals(helperAuth.LocSession, sess)
	c.Locals("user_id", sess.UserID.String())
	c.Locals("user_email", sess.Email)
	c.Locals("user_name", sess.Name)
}
