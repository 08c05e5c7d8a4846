package complaintValidators

import (
	"cdesk/middleware"
	"cdesk/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ComplaintInput is the validated complaint submission form.
type ComplaintInput struct {
	Title       string
	Category    string
	Description string
	Priority    string
}

// FeedbackInput is the validated feedback form.
type FeedbackInput struct {
	Rating   int
	Comments string
}

// NewComplaint validates the submission form. Category and priority
// default when absent.
func NewComplaint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &ComplaintInput{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Category:    strings.TrimSpace(c.FormValue("category")),
			Description: strings.TrimSpace(c.FormValue("description")),
			Priority:    strings.TrimSpace(c.FormValue("priority")),
		}

		if reqData.Category == "" {
			reqData.Category = models.DefaultCategory
		}
		if reqData.Priority == "" {
			reqData.Priority = models.PriorityMedium
		}

		if reqData.Title == "" || reqData.Description == "" {
			middleware.AddFlash(c, "danger", "Title and description are required")
			return middleware.Render(c.Status(fiber.StatusBadRequest), "complaint_new", fiber.Map{
				"Title":       reqData.Title,
				"Category":    reqData.Category,
				"Description": reqData.Description,
				"Priority":    reqData.Priority,
			})
		}

		if !models.ValidPriority(reqData.Priority) {
			middleware.AddFlash(c, "danger", "Invalid priority! Allowed: Low, Medium, High")
			return middleware.Render(c.Status(fiber.StatusBadRequest), "complaint_new", fiber.Map{
				"Title":       reqData.Title,
				"Category":    reqData.Category,
				"Description": reqData.Description,
			})
		}

		c.Locals("validatedComplaint", reqData)
		return c.Next()
	}
}

// Feedback validates the rating before anything else is checked; an
// out-of-range rating never reaches the store.
func Feedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rating, _ := strconv.Atoi(c.FormValue("rating", "0"))
		if rating < 1 || rating > 5 {
			middleware.AddFlash(c, "warning", "Rating must be between 1 and 5")
			return c.Redirect("/complaints/" + c.Params("id"))
		}

		c.Locals("validatedFeedback", &FeedbackInput{
			Rating:   rating,
			Comments: strings.TrimSpace(c.FormValue("comments")),
		})
		return c.Next()
	}
}
