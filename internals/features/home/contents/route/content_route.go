package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/contents/controller"
	"mwit_alumni_backend/internals/features/home/contents/service"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func ContentRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, public *service.PublicContent) {
	ctrl := controller.NewContentController(db, public)
	admin := g.Admin("การจัดการเนื้อหาหน้าเว็บ")

	api.Get("/content/public", ctrl.PublicList)

	api.Get("/content", g.Auth, admin, ctrl.List)
	api.Post("/content", g.Auth, admin, ctrl.Create)
	api.Put("/content/:id", g.Auth, admin, ctrl.Update)
	api.Delete("/content/:id", g.Auth, admin, ctrl.Delete)
}
