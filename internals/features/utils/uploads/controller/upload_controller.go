package controller

import (
	"github.com/gofiber/fiber/v2"

	"mwit_alumni_backend/internals/constants"
	helper "mwit_alumni_backend/internals/helpers"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
)

type UploadController struct {
	Uploader helperOSS.Uploader
}

func NewUploadController(up helperOSS.Uploader) *UploadController {
	return &UploadController{Uploader: up}
}

// POST /api/upload/blog  (multipart "file")
func (ctrl *UploadController) BlogImage(c *fiber.Ctx) error {
	if ctrl.Uploader == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, constants.MsgStorageUnavailable)
	}
	fh := helperOSS.FormImage(c, "file", "image")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "กรุณาแนบไฟล์รูปภาพ")
	}
	url, err := ctrl.Uploader.UploadAsWebP(c.UserContext(), fh, "blog")
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "อัปโหลดรูปภาพเรียบร้อย", fiber.Map{"url": url})
}
