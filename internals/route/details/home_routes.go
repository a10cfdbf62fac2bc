package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	blogRoute "mwit_alumni_backend/internals/features/home/blogs/route"
	contentRoute "mwit_alumni_backend/internals/features/home/contents/route"
	messageRoute "mwit_alumni_backend/internals/features/home/messages/route"
	qaRoute "mwit_alumni_backend/internals/features/home/qa/route"
)

// HomeRoutes: everything the public site renders plus its admin CRUD.
func HomeRoutes(api fiber.Router, db *gorm.DB, d Deps) {
	blogRoute.BlogRoutes(api, db, d.Guards, d.Uploader)
	qaRoute.QARoutes(api, db, d.Guards)
	contentRoute.ContentRoutes(api, db, d.Guards, d.Content)
	messageRoute.MessageRoutes(api, db, d.Guards, d.Publisher, d.Turnstile)
}
