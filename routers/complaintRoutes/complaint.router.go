package complaintRoutes

import (
	controller "cdesk/controllers/complaint"
	"cdesk/middleware"
	validator "cdesk/validators/complaint"

	"github.com/gofiber/fiber/v2"
)

func SetupComplaintRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.RequireLogin, controller.Dashboard)

	complaints := app.Group("/complaints", middleware.RequireLogin)

	complaints.Get("/new", controller.ShowNew)
	complaints.Post("/new", validator.NewComplaint(), controller.Create)
	complaints.Get("/", controller.List)
	complaints.Get("/:id", controller.Detail)
	complaints.Post("/:id/feedback", validator.Feedback(), controller.LeaveFeedback)
}
