package adminController

import (
	"cdesk/database"
	"cdesk/middleware"
	"cdesk/models"
	adminValidators "cdesk/validators/admin"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// complaintRow is a complaint joined with its owner for the admin list.
type complaintRow struct {
	ID        uint
	Title     string
	Category  string
	Priority  string
	Status    string
	CreatedAt time.Time
	UserName  string
	UserEmail string
}

// historyRow is a history entry joined with the acting admin's name.
type historyRow struct {
	OldStatus string
	NewStatus string
	Note      string
	ActorName string
	ActionAt  time.Time
}

type globalCounts struct {
	Submitted  int64
	InProgress int64
	Resolved   int64
	Closed     int64
}

// Dashboard lists every complaint joined with its owner. The status
// filter narrows the list only; the per-status counts always cover the
// whole table.
func Dashboard(c *fiber.Ctx) error {
	filter, _ := c.Locals("validatedListFilter").(string)

	db := database.Database.Db

	query := db.Model(&models.Complaint{}).
		Select("complaints.id, complaints.title, complaints.category," +
			" complaints.priority, complaints.status, complaints.created_at," +
			" users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = complaints.user_id")
	if filter != "" {
		query = query.Where("complaints.status = ?", filter)
	}

	var rows []complaintRow
	if err := query.Order("complaints.created_at DESC").Scan(&rows).Error; err != nil {
		log.Printf("Error fetching complaints: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaints")
	}

	var counts globalCounts
	if err := db.Model(&models.Complaint{}).
		Select("COUNT(CASE WHEN status = ? THEN 1 END) AS submitted,"+
			" COUNT(CASE WHEN status = ? THEN 1 END) AS in_progress,"+
			" COUNT(CASE WHEN status = ? THEN 1 END) AS resolved,"+
			" COUNT(CASE WHEN status = ? THEN 1 END) AS closed",
			models.StatusSubmitted, models.StatusInProgress,
			models.StatusResolved, models.StatusClosed).
		Scan(&counts).Error; err != nil {
		log.Printf("Error aggregating complaints: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaints")
	}

	return middleware.Render(c, "admin_dashboard", fiber.Map{
		"Complaints":   rows,
		"Counts":       counts,
		"FilterStatus": filter,
		"Statuses":     models.AllStatuses(),
	})
}

// Detail shows any complaint with its owner and full history.
func Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	db := database.Database.Db

	var complaint models.Complaint
	if err := db.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		log.Printf("Error fetching complaint: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	var owner models.User
	if err := db.First(&owner, complaint.UserID).Error; err != nil {
		log.Printf("Error fetching complaint owner: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	var history []historyRow
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

	return middleware.Render(c, "admin_complaint_detail", fiber.Map{
		"Complaint": complaint,
		"Owner":     owner,
		"History":   history,
		"Statuses":  models.AllStatuses(),
	})
}

// UpdateStatus transitions a complaint's status and appends one history
// row. Both writes run in a single transaction so a failure cannot leave
// the status changed without its audit entry, or vice versa.
func UpdateStatus(c *fiber.Ctx) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	reqData, ok := c.Locals("validatedStatusUpdate").(*adminValidators.StatusUpdateInput)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var complaint models.Complaint
	if err := db.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		log.Printf("Error fetching complaint: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch complaint")
	}

	oldStatus := complaint.Status
	newStatus := reqData.Status
	if newStatus == "" {
		newStatus = oldStatus
	}

	if !models.CanTransition(oldStatus, newStatus) {
		middleware.AddFlash(c, "warning", "Cannot move a complaint from "+oldStatus+" back to "+newStatus)
		return c.Redirect("/admin/complaints/" + c.Params("id"))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Complaint{}).
			Where("id = ?", complaint.ID).
			Update("status", newStatus).Error; err != nil {
			return err
		}
		return tx.Create(&models.ComplaintHistory{
			ComplaintID: complaint.ID,
			ActionBy:    ident.ID,
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
			Note:        reqData.Note,
		}).Error
	})
	if err != nil {
		log.Printf("Error updating complaint status: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update status")
	}

	middleware.AddFlash(c, "success", "Status updated")
	return c.Redirect("/admin/complaints/" + c.Params("id"))
}
