package apiRoutes

import (
	controller "cdesk/controllers/api"
	"cdesk/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupApiRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/login", controller.Login)
	api.Get("/complaints", middleware.JWTMiddleware, controller.ComplaintList)
	api.Post("/complaints", middleware.JWTMiddleware, controller.CreateComplaint)
}
