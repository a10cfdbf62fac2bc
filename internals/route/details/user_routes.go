package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alumniRoute "mwit_alumni_backend/internals/features/alumni/profiles/route"
	usersRoute "mwit_alumni_backend/internals/features/users/users/route"
)

// UserRoutes: account administration and the alumni directory.
func UserRoutes(api fiber.Router, db *gorm.DB, d Deps) {
	usersRoute.UsersAdminRoutes(api, db, d.Guards)
	alumniRoute.AlumniRoutes(api, db, d.Guards, d.Uploader)
}
