package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	shortLinkRoute "mwit_alumni_backend/internals/features/shortlinks/route"
	captchaRoute "mwit_alumni_backend/internals/features/utils/captcha/route"
	uploadRoute "mwit_alumni_backend/internals/features/utils/uploads/route"
)

// UtilsRoutes: short-link admin, uploads and captcha pre-check under /api.
func UtilsRoutes(api fiber.Router, db *gorm.DB, d Deps) {
	shortLinkRoute.ShortLinkAdminRoutes(api, db, d.Guards)
	uploadRoute.UploadRoutes(api, d.Guards, d.Uploader)
	captchaRoute.CaptchaRoutes(api, d.Turnstile)
}

// ShortLinkRoutes mounts the redirect at the site root (/s/:code).
func ShortLinkRoutes(app *fiber.App, db *gorm.DB) {
	shortLinkRoute.ShortLinkRedirectRoutes(app, db)
}
