package server

import (
	"cdesk/middleware"
	adminRoutes "cdesk/routers/adminRoutes"
	apiRoutes "cdesk/routers/apiRoutes"
	authRoutes "cdesk/routers/authRoutes"
	complaintRoutes "cdesk/routers/complaintRoutes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// New assembles the application: view engine, error handler, middleware
// chain, and all route groups. Tests build the same app against their
// own database.
func New(viewsDir string) *fiber.App {
	engine := html.New(viewsDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	middleware.InitSessionStore()
	app.Use(middleware.LoadIdentity)

	app.Get("/", func(c *fiber.Ctx) error {
		return middleware.Render(c, "index", nil)
	})

	authRoutes.SetupAuthRoutes(app)
	complaintRoutes.SetupComplaintRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	apiRoutes.SetupApiRoutes(app)

	return app
}

// errorHandler renders the themed error page for browser routes and the
// JSON envelope for the API surface.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return middleware.JsonResponse(c, code, false, message, nil)
	}

	if renderErr := middleware.Render(c.Status(code), "error", fiber.Map{
		"Code":    code,
		"Message": message,
	}); renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}
