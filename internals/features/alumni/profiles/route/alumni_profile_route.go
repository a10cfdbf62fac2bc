package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/alumni/profiles/controller"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func AlumniRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, up helperOSS.Uploader) {
	ctrl := controller.NewAlumniProfileController(db, up)
	admin := g.Admin("การจัดการข้อมูลศิษย์เก่า")

	alumni := api.Group("/alumni")
	alumni.Get("/", ctrl.PublicList)
	alumni.Get("/profile", g.Auth, ctrl.GetMine)
	alumni.Put("/profile", g.Auth, ctrl.UpsertMine)
	alumni.Get("/all", g.Auth, admin, ctrl.List)
	alumni.Delete("/:id", g.Auth, admin, ctrl.Delete)
}
