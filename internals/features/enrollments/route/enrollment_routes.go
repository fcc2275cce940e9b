// file: internals/features/enrollments/route/enrollment_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "akademiku_backend/internals/features/enrollments/controller"
	authMw "akademiku_backend/internals/middlewares/auth"
)

// EnrollmentUserRoutes: student membuat & melihat enrollment sendiri.
func EnrollmentUserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := enrollmentController.New(db, v)

	enrollments := api.Group("/enrollments")
	enrollments.Post("/", authMw.Can("enrollment", authMw.ActionWrite), ctl.Create)
	enrollments.Get("/", authMw.Can("enrollment", authMw.ActionRead), ctl.ListMine)
}

// EnrollmentAdminRoutes: listing seluruh enrollment tenant.
func EnrollmentAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := enrollmentController.New(db, v)

	enrollments := api.Group("/enrollments")
	enrollments.Get("/all", ctl.ListByAcademy)
}

// EnrollmentWebhookRoutes: endpoint notifikasi Midtrans, tanpa auth
// (path ini juga di-skip AuthMiddleware).
func EnrollmentWebhookRoutes(api fiber.Router, db *gorm.DB) {
	ctl := enrollmentController.New(db, nil)
	api.Post("/enrollments/notification", ctl.Notification)
}
