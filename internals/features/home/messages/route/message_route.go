package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/home/messages/controller"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	"mwit_alumni_backend/internals/middlewares"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func MessageRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, pub helperEvents.Publisher, captcha helperTurnstile.Verifier) {
	ctrl := controller.NewMessageController(db, pub)
	admin := g.Admin("การจัดการข้อความติดต่อ")

	api.Post("/messages",
		middlewares.PublicFormRateLimiter(),
		middlewares.TurnstileRequired(captcha),
		ctrl.Create,
	)

	api.Get("/messages", g.Auth, admin, ctrl.List)
	api.Patch("/messages/:id/read", g.Auth, admin, ctrl.MarkRead)
	api.Patch("/messages/:id/note", g.Auth, admin, ctrl.Note)
	api.Delete("/messages/:id", g.Auth, admin, ctrl.Delete)
}
