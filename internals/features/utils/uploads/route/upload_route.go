package route

import (
	"github.com/gofiber/fiber/v2"

	"mwit_alumni_backend/internals/features/utils/uploads/controller"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func UploadRoutes(api fiber.Router, g authMw.Guards, up helperOSS.Uploader) {
	ctrl := controller.NewUploadController(up)

	api.Post("/upload/blog", g.Auth, g.Admin("การอัปโหลดไฟล์"), ctrl.BlogImage)
}
