package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "mwit_alumni_backend/internals/features/users/auth/route"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, d Deps) {
	authRoute.AuthRoutes(api, db, d.Guards, d.Identity)
}
