package authRoutes

import (
	controller "cdesk/controllers/auth"
	"cdesk/middleware"
	validator "cdesk/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/register", controller.ShowRegister)
	app.Post("/register", validator.Register(), controller.Register)
	app.Get("/login", controller.ShowLogin)
	app.Post("/login", controller.Login)
	app.Get("/logout", middleware.RequireLogin, controller.Logout)
}
