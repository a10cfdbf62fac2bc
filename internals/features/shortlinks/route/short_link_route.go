package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/shortlinks/controller"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

// ShortLinkRedirectRoutes mounts GET /s/:code on the root router.
func ShortLinkRedirectRoutes(root fiber.Router, db *gorm.DB) {
	ctrl := controller.NewShortLinkController(db)
	root.Get("/s/:code", ctrl.Redirect)
}

func ShortLinkAdminRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctrl := controller.NewShortLinkController(db)
	admin := g.Admin("การจัดการลิงก์สั้น")

	api.Get("/short-links", g.Auth, admin, ctrl.List)
	api.Post("/short-links", g.Auth, admin, ctrl.Create)
	api.Get("/short-links/:id", g.Auth, admin, ctrl.Get)
	api.Put("/short-links/:id", g.Auth, admin, ctrl.Update)
	api.Delete("/short-links/:id", g.Auth, admin, ctrl.Delete)
}
