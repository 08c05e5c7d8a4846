package adminRoutes

import (
	controller "cdesk/controllers/admin"
	"cdesk/middleware"
	"cdesk/models"
	validator "cdesk/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.RequireRole(models.RoleAdmin))

	admin.Get("/", validator.ListFilter(), controller.Dashboard)
	admin.Get("/complaints/:id", controller.Detail)
	admin.Post("/complaints/:id", validator.StatusUpdate(), controller.UpdateStatus)
}
