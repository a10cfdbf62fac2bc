package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helperAuth "mwit_alumni_backend/internals/helpers/auth"
)

// Guards bundles the handlers feature routes attach per route.
type Guards struct {
	Auth     fiber.Handler
	Optional fiber.Handler
	Resolver helperAuth.RoleResolver
}

func NewGuards(db *gorm.DB, resolver helperAuth.RoleResolver) Guards {
	return Guards{
		Auth:     AuthRequired(db),
		Optional: OptionalAuth(db),
		Resolver: resolver,
	}
}

// Admin returns the admin gate; feature names the resource in the 403 message.
func (g Guards) Admin(feature string) fiber.Handler {
	return RequireAdmin(g.Resolver, feature)
}
