// file: internals/route/base_routes.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "AkademiKu API", fiber.Map{
			"time": time.Now().Format(time.RFC3339),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "db handle error")
		}
		if err := sqlDB.Ping(); err != nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "db unreachable")
		}
		return helper.JsonOK(c, "healthy", nil)
	})

	// memastikan recovery middleware bekerja
	app.Get("/panic-test", func(c *fiber.Ctx) error {
		panic("panic-test")
	})
}
