package adminValidators

import (
	"cdesk/middleware"
	"cdesk/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StatusUpdateInput is the validated status transition form. An empty
// Status means "keep the current status".
type StatusUpdateInput struct {
	Status string
	Note   string
}

// StatusUpdate validates the transition form. Legality against the
// current status is checked in the controller, which holds the row.
func StatusUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &StatusUpdateInput{
			Status: strings.TrimSpace(c.FormValue("status")),
			Note:   strings.TrimSpace(c.FormValue("note")),
		}

		if reqData.Status != "" && !models.ValidStatus(reqData.Status) {
			middleware.AddFlash(c, "warning", "Unknown status value")
			return c.Redirect("/admin/complaints/" + c.Params("id"))
		}

		c.Locals("validatedStatusUpdate", reqData)
		return c.Next()
	}
}

// ListFilter validates the optional status filter on the admin dashboard.
func ListFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.TrimSpace(c.Query("status"))
		if status != "" && !models.ValidStatus(status) {
			middleware.AddFlash(c, "warning", "Unknown status filter")
			return c.Redirect("/admin")
		}

		c.Locals("validatedListFilter", status)
		return c.Next()
	}
}
