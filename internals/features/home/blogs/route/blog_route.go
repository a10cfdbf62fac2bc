package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/blogs/controller"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func BlogRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, up helperOSS.Uploader) {
	ctrl := controller.NewBlogController(db, up)
	admin := g.Admin("การจัดการบทความ")

	blog := api.Group("/blog")

	// admin routes first so /admin/list is not taken as a slug
	blog.Get("/admin/list", g.Auth, admin, ctrl.AdminList)
	blog.Post("/", g.Auth, admin, ctrl.Create)
	blog.Put("/:id/images", g.Auth, admin, ctrl.ReplaceImages)
	blog.Put("/:id", g.Auth, admin, ctrl.Update)
	blog.Delete("/:id", g.Auth, admin, ctrl.Delete)

	blog.Get("/", ctrl.PublicList)
	blog.Get("/:idOrSlug", ctrl.PublicGet)
}
