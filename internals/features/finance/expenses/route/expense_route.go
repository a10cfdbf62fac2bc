package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/finance/expenses/controller"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func ExpenseRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, stats *statsService.StatsService) {
	ctrl := controller.NewExpenseController(db, stats)
	admin := g.Admin("การจัดการรายรับรายจ่าย")

	api.Get("/expenses", ctrl.List)
	api.Post("/expenses", g.Auth, admin, ctrl.Create)
	api.Put("/expenses/:id", g.Auth, admin, ctrl.Update)
	api.Delete("/expenses/:id", g.Auth, admin, ctrl.Delete)
}
