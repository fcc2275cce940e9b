// file: internals/route/index.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	programRoute "akademiku_backend/internals/features/academics/programs/route"
	academyRoute "akademiku_backend/internals/features/academy/route"
	enrollmentRoute "akademiku_backend/internals/features/enrollments/route"
	userRoute "akademiku_backend/internals/features/users/route"
	authMw "akademiku_backend/internals/middlewares/auth"
)

/* =========================
   Route groups
   /api/public — tanpa auth (landing page, onboarding, webhook)
   /api/u      — user login (student ke atas)
   /api/a      — panel admin (dibatasi lagi per-route via capability)
   ========================= */

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ---- public ----
	public := api.Group("/public")
	academyRoute.AcademyPublicRoutes(public, db, v)
	programRoute.ProgramPublicRoutes(public, db)
	userRoute.AuthPublicRoutes(public, db, v)

	// webhook Midtrans: tanpa auth, path terdaftar di skipPaths middleware
	enrollmentRoute.EnrollmentWebhookRoutes(api, db)

	// ---- authenticated user ----
	u := api.Group("/u", authMw.AuthMiddleware(db))
	userRoute.UserRoutes(u, db, v)
	enrollmentRoute.EnrollmentUserRoutes(u, db, v)

	// ---- admin panel ----
	a := api.Group("/a", authMw.AuthMiddleware(db))
	academyRoute.AcademyAdminRoutes(a, db, v)
	programRoute.ProgramAdminRoutes(a, db, v)
	enrollmentRoute.EnrollmentAdminRoutes(a, db, v)
}
