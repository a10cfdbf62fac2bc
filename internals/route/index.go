package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "mwit_alumni_backend/internals/route/details"
)

var startTime time.Time

type Deps = routeDetails.Deps

func SetupRoutes(app *fiber.App, db *gorm.DB, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, db)

	slog.Info("mounting short-link redirect")
	routeDetails.ShortLinkRoutes(app, db)

	api := app.Group("/api")

	slog.Info("mounting auth routes")
	routeDetails.AuthRoutes(api, db, d)

	slog.Info("mounting user routes")
	routeDetails.UserRoutes(api, db, d)

	slog.Info("mounting finance routes")
	routeDetails.FinanceRoutes(api, db, d)

	slog.Info("mounting home routes")
	routeDetails.HomeRoutes(api, db, d)

	slog.Info("mounting utils routes")
	routeDetails.UtilsRoutes(api, db, d)
}
