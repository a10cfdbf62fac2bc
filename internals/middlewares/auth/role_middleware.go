package auth

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/gofiber/fiber/v2"

	"mwit_alumni_backend/internals/constants"
	helper "mwit_alumni_backend/internals/helpers"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

const LocUserRole = "user_role"

// RequireRoles must run after AuthRequired. The role comes from the resolver
// (session claim, else database). 401 without session, 403 when the role is not allowed.
func RequireRoles(resolver helperAuth.RoleResolver, feature string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := helperAuth.SessionFromCtx(c)
		if sess == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrLoginRequired)
		}

		role, err := resolver.ResolveRole(c.UserContext(), sess)
		if err != nil {
			if errors.Is(err, helperAuth.ErrUnknownUser) {
				return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
			}
			slog.ErrorContext(c.UserContext(), "resolve role failed", "email", sess.Email, "err", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgInternalError)
		}

		if !slices.Contains(roles, role) {
			slog.InfoContext(c.UserContext(), "forbidden",
				"email", sess.Email, "role", role, "method", c.Method(), "path", c.Path())
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		c.Locals(LocUserRole, role)
		return c.Next()
	}
}

func RequireAdmin(resolver helperAuth.RoleResolver, feature string) fiber.Handler {
	return RequireRoles(resolver, feature, constants.AdminOnly...)
}
