// file: internals/features/academics/programs/route/program_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	programController "akademiku_backend/internals/features/academics/programs/controller"
	authMw "akademiku_backend/internals/middlewares/auth"
)

/* =========================
   Admin routes (guarded)
   ========================= */

// ProgramAdminRoutes: mount di group /api/a (sudah lewat AuthMiddleware).
func ProgramAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := programController.New(db, v)
	dctl := programController.NewDiscountController(db, v)

	programs := api.Group("/programs")
	programs.Post("/", authMw.Can("program", authMw.ActionWrite), ctl.Create)
	programs.Put("/:id", authMw.Can("program", authMw.ActionWrite), ctl.Update)
	programs.Get("/", authMw.Can("program", authMw.ActionRead), ctl.List)
	programs.Get("/:id", authMw.Can("program", authMw.ActionRead), ctl.GetByID)
	programs.Delete("/:id", authMw.Can("program", authMw.ActionDelete), ctl.Delete)

	discounts := api.Group("/discounts")
	discounts.Post("/", authMw.Can("discount", authMw.ActionWrite), dctl.Create)
	discounts.Put("/:id", authMw.Can("discount", authMw.ActionWrite), dctl.Update)
	discounts.Get("/", authMw.Can("discount", authMw.ActionRead), dctl.List)
	discounts.Get("/:id", authMw.Can("discount", authMw.ActionRead), dctl.GetByID)
	discounts.Delete("/:id", authMw.Can("discount", authMw.ActionDelete), dctl.Delete)

	sctl := programController.NewSportController(db)
	sports := api.Group("/sports")
	sports.Post("/", authMw.Can("program", authMw.ActionWrite), sctl.Create)
	sports.Get("/", authMw.Can("program", authMw.ActionRead), sctl.List)
	sports.Delete("/:id", authMw.Can("program", authMw.ActionDelete), sctl.Delete)
}

/* =========================
   Public routes (tanpa auth)
   ========================= */

// ProgramPublicRoutes: listing program yang visible untuk landing page.
func ProgramPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := programController.New(db, nil)

	programs := api.Group("/programs")
	programs.Get("/by-academy/:academy_id", ctl.PublicListByAcademy)
}
