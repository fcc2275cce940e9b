// file: internals/features/academy/route/academy_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academyController "akademiku_backend/internals/features/academy/academies/controller"
	branchController "akademiku_backend/internals/features/academy/branches/controller"
	coachController "akademiku_backend/internals/features/academy/coaches/controller"
	authMw "akademiku_backend/internals/middlewares/auth"
)

/* =========================
   Admin routes (guarded)
   ========================= */

func AcademyAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	actl := academyController.New(db, v)
	bctl := branchController.New(db, v)
	cctl := coachController.New(db, v)

	academies := api.Group("/academies")
	academies.Get("/me", authMw.Can("academy", authMw.ActionRead), actl.GetMine)
	academies.Put("/me", authMw.Can("academy", authMw.ActionWrite), actl.Update)
	academies.Post("/me/logo", authMw.Can("academy", authMw.ActionWrite), actl.UploadLogo)

	branches := api.Group("/branches")
	branches.Post("/", authMw.Can("branch", authMw.ActionWrite), bctl.Create)
	branches.Get("/", authMw.Can("branch", authMw.ActionRead), bctl.List)
	branches.Get("/:id", authMw.Can("branch", authMw.ActionRead), bctl.GetByID)
	branches.Put("/:id", authMw.Can("branch", authMw.ActionWrite), bctl.Update)
	branches.Delete("/:id", authMw.Can("branch", authMw.ActionDelete), bctl.Delete)

	coaches := api.Group("/coaches")
	coaches.Post("/", authMw.Can("coach", authMw.ActionWrite), cctl.Create)
	coaches.Get("/", authMw.Can("coach", authMw.ActionRead), cctl.List)
	coaches.Get("/:id", authMw.Can("coach", authMw.ActionRead), cctl.GetByID)
	coaches.Put("/:id", authMw.Can("coach", authMw.ActionWrite), cctl.Update)
	coaches.Delete("/:id", authMw.Can("coach", authMw.ActionDelete), cctl.Delete)
}

/* =========================
   Public routes
   ========================= */

func AcademyPublicRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	actl := academyController.New(db, v)

	academies := api.Group("/academies")
	academies.Post("/", actl.Create) // onboarding tenant baru
	academies.Get("/by-slug/:slug", actl.GetBySlug)
}
