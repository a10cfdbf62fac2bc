package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/donations/donations/controller"
	"mwit_alumni_backend/internals/features/donations/donations/service"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	"mwit_alumni_backend/internals/middlewares"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

type Deps struct {
	Stats     *statsService.StatsService
	Uploader  helperOSS.Uploader
	Publisher helperEvents.Publisher
	Turnstile helperTurnstile.Verifier
}

func DonationRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, d Deps) {
	svc := service.NewDonationService(db, d.Stats)
	ctrl := controller.NewDonationController(db, svc, d.Uploader, d.Publisher)
	admin := g.Admin("การจัดการรายการบริจาค")

	// public
	api.Post("/donations",
		middlewares.PublicFormRateLimiter(),
		middlewares.TurnstileRequired(d.Turnstile),
		ctrl.Create,
	)
	api.Get("/donations/public", ctrl.PublicList)

	// admin
	api.Get("/donations/export", g.Auth, admin, ctrl.Export)
	api.Get("/donations", g.Auth, admin, ctrl.List)
	api.Get("/donations/:id", g.Auth, admin, ctrl.Get)
	api.Patch("/donations/:id/status", g.Auth, admin, ctrl.UpdateStatus)
}
