package authValidators

import (
	"cdesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RegisterInput is the validated registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register validates the registration form. Emails are case-normalized
// here so the uniqueness check downstream is case-insensitive.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &RegisterInput{
			Name:     strings.TrimSpace(c.FormValue("name")),
			Email:    strings.ToLower(strings.TrimSpace(c.FormValue("email"))),
			Password: c.FormValue("password"),
		}

		if reqData.Name == "" || reqData.Email == "" || reqData.Password == "" {
			middleware.AddFlash(c, "danger", "All fields are required")
			return middleware.Render(c.Status(fiber.StatusBadRequest), "register", fiber.Map{
				"Name":  reqData.Name,
				"Email": reqData.Email,
			})
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}
