package middleware

import "github.com/gofiber/fiber/v2"

// Render renders a view with the request's flashes and identity merged in.
func Render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = ConsumeFlashes(c)
	if ident, ok := CurrentIdentity(c); ok {
		data["Identity"] = ident
	}
	return c.Render(name, data)
}
