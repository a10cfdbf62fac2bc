package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/finance/stats/controller"
	"mwit_alumni_backend/internals/features/finance/stats/service"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func StatsRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, svc *service.StatsService) {
	ctrl := controller.NewStatsController(db, svc)

	api.Get("/stats/yearly", ctrl.Yearly)
	api.Get("/stats/generations", ctrl.Generations)
	api.Post("/stats/yearly/recompute", g.Auth, g.Admin("การคำนวณสถิติ"), ctrl.Recompute)
}
