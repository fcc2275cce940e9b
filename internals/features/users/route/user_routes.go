// file: internals/features/users/route/user_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "akademiku_backend/internals/features/users/auth/controller"
	userController "akademiku_backend/internals/features/users/user/controller"
	"akademiku_backend/internals/middlewares"
	authMw "akademiku_backend/internals/middlewares/auth"
)

/* =========================
   Public auth routes
   ========================= */

// AuthPublicRoutes: register/login dengan rate limiter ketat.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := authController.New(db, v)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), ctl.GoogleLogin)
	auth.Post("/refresh", ctl.Refresh)
}

/* =========================
   Authenticated user routes
   ========================= */

// UserRoutes: mount di group yang sudah lewat AuthMiddleware.
func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	actl := authController.New(db, v)
	uctl := userController.New(db)

	auth := api.Group("/auth")
	auth.Post("/logout", actl.Logout)
	auth.Get("/me", actl.Me)

	users := api.Group("/users")
	users.Get("/", authMw.Can("academy", authMw.ActionRead), uctl.List)
	users.Put("/:id/role", authMw.Can("academy", authMw.ActionWrite), uctl.UpdateRole)
}
