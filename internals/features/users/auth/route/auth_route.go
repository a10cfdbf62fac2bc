package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/features/users/auth/controller"
	"mwit_alumni_backend/internals/features/users/auth/service"
	"mwit_alumni_backend/internals/middlewares"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, verifier service.IdentityVerifier) {
	ctrl := controller.NewAuthController(db, verifier)

	api.Post("/auth/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	api.Post("/auth/logout", g.Optional, ctrl.Logout)
	api.Get("/auth/me", g.Auth, ctrl.Me)
}
