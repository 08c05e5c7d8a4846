package complaintController

import (
	"cdesk/database"
	"cdesk/middleware"
	"cdesk/models"
	complaintValidators "cdesk/validators/complaint"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// historyEntry is a history row joined with the acting admin's name.
type historyEntry struct {
	OldStatus string
	NewStatus string
	Note      string
	ActorName string
	ActionAt  time.Time
}

type statusCounts struct {
	Submitted  int64
	InProgress int64
	Resolved   int64
}

// Dashboard shows the caller's own status counts and their five newest
// complaints.
func Dashboard(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	db := database.Database.Db

	var counts statusCounts
	if err := db.Model(&models.Complaint{}).
		Select("COUNT(CASE WHEN status = ? THEN 1 END) AS submitted,"+
			" COUNT(CASE WHEN status = ? THEN 1 END) AS in_progress,"+
			" COUNT(CASE WHEN status IN ? THEN 1 END) AS resolved",
			models.StatusSubmitted, models.StatusInProgress,
			[]string{models.StatusResolved, models.StatusClosed}).
		Where("user_id = ?", ident.ID).
		Scan(&counts).Error; err != nil {
		log.Printf("Error aggregating complaints: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	var latest []models.Complaint
	if err := db.Where("user_id = ?", ident.ID).
		Order("created_at DESC").Limit(5).
		Find(&latest).Error; err != nil {
		log.Printf("Error fetching complaints: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return middleware.Render(c, "dashboard", fiber.Map{
		"Counts": counts,
		"Latest": latest,
	})
}

func ShowNew(c *fiber.Ctx) error {
	return middleware.Render(c, "complaint_new", nil)
}

// Create inserts a complaint owned by the caller with initial status
// Submitted.
func Create(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	reqData, ok := c.Locals("validatedComplaint").(*complaintValidators.ComplaintInput)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
	}

	complaint := models.Complaint{
		UserID:      ident.ID,
		Title:       reqData.Title,
		Category:    reqData.Category,
		Description: reqData.Description,
		Priority:    reqData.Priority,
		Status:      models.StatusSubmitted,
	}

	if err := database.Database.Db.Create(&complaint).Error; err != nil {
		log.Printf("Error saving complaint: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to submit complaint")
	}

	middleware.AddFlash(c, "success", "Complaint submitted successfully")
	return c.Redirect("/complaints")
}

// List shows the caller's complaints, newest first.
func List(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var complaints []models.Complaint
	if err := database.Database.Db.
		Where("user_id = ?", ident.ID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		log.Printf("Error fetching complaints: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaints")
	}

	return middleware.Render(c, "complaints", fiber.Map{"Complaints": complaints})
}

// Detail shows one owned complaint with its history and the caller's own
// feedback. A complaint owned by someone else is indistinguishable from
// one that does not exist.
func Detail(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	db := database.Database.Db

	var complaint models.Complaint
	if err := db.Where("id = ? AND user_id = ?", id, ident.ID).First(&complaint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		log.Printf("Error fetching complaint: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	var history []historyEntry
	if err := db.Model(&models.ComplaintHistory{}).
		Select("complaint_histories.old_status, complaint_histories.new_status,"+
			" complaint_histories.note, complaint_histories.created_at AS action_at,"+
			" users.name AS actor_name").
		Joins("JOIN users ON users.id = complaint_histories.action_by").
		Where("complaint_histories.complaint_id = ?", complaint.ID).
		Order("complaint_histories.created_at DESC").
		Scan(&history).Error; err != nil {
		log.Printf("Error fetching history: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	var feedback models.Feedback
	hasFeedback := db.Where("complaint_id = ? AND user_id = ?", complaint.ID, ident.ID).
		First(&feedback).Error == nil

	return middleware.Render(c, "complaint_detail", fiber.Map{
		"Complaint":   complaint,
		"History":     history,
		"Feedback":    feedback,
		"HasFeedback": hasFeedback,
		"CanFeedback": models.IsTerminal(complaint.Status),
	})
}

// LeaveFeedback upserts the caller's feedback for an owned complaint in
// terminal status. The (complaint, user) pair is unique at the store
// level; a second submission overwrites the first.
func LeaveFeedback(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	reqData, ok := c.Locals("validatedFeedback").(*complaintValidators.FeedbackInput)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var complaint models.Complaint
	if err := db.Where("id = ? AND user_id = ?", id, ident.ID).First(&complaint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		log.Printf("Error fetching complaint: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	if !models.IsTerminal(complaint.Status) {
		middleware.AddFlash(c, "warning", "You can leave feedback only after resolution")
		return c.Redirect("/complaints/" + c.Params("id"))
	}

	feedback := models.Feedback{
		ComplaintID: complaint.ID,
		UserID:      ident.ID,
		Rating:      reqData.Rating,
		Comments:    reqData.Comments,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "complaint_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comments", "updated_at"}),
	}).Create(&feedback).Error; err != nil {
		log.Printf("Error saving feedback: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save feedback")
	}

	middleware.AddFlash(c, "success", "Thanks for your feedback!")
	return c.Redirect("/complaints/" + c.Params("id"))
}
