package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/users/users/controller"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func UsersAdminRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctrl := controller.NewUsersController(db)
	admin := g.Admin("การจัดการผู้ใช้")

	api.Get("/users", g.Auth, admin, ctrl.List)
	api.Patch("/users/:id", g.Auth, admin, ctrl.UpdateRole)
	api.Delete("/users/:id", g.Auth, admin, ctrl.Delete)
}
