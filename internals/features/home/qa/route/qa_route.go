package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/qa/controller"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func QARoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctrl := controller.NewQAController(db)
	admin := g.Admin("การจัดการคำถามที่พบบ่อย")

	api.Get("/qa/public", ctrl.PublicList)

	api.Get("/qa", g.Auth, admin, ctrl.List)
	api.Post("/qa", g.Auth, admin, ctrl.Create)
	api.Put("/qa/:id", g.Auth, admin, ctrl.Update)
	api.Delete("/qa/:id", g.Auth, admin, ctrl.Delete)
}
