package apiController

import (
	"cdesk/database"
	"cdesk/middleware"
	"cdesk/models"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

// Login exchanges credentials for a bearer token usable on the rest of
// the API surface.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(reqData); err != nil {
		errs := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			errs[strings.ToLower(fe.Field())] = "failed on " + fe.Tag()
		}
		return middleware.ValidationErrorResponse(c, errs)
	}

	var user models.User
	err := database.Database.Db.
		Where("email = ?", strings.ToLower(strings.TrimSpace(reqData.Email))).
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// ComplaintList returns the caller's complaints, newest first.
func ComplaintList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var complaints []models.Complaint
	if err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		log.Printf("Error fetching complaints: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch complaints!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaints fetched successfully!", complaints)
}

// CreateComplaint creates a complaint owned by the token's user.
func CreateComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify user!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title" validate:"required,min=3,max=100"`
		Category    string `json:"category"`
		Description string `json:"description" validate:"required"`
		Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(reqData); err != nil {
		errs := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			errs[strings.ToLower(fe.Field())] = "failed on " + fe.Tag()
		}
		return middleware.ValidationErrorResponse(c, errs)
	}

	complaint := models.Complaint{
		UserID:      userId,
		Title:       strings.TrimSpace(reqData.Title),
		Category:    strings.TrimSpace(reqData.Category),
		Description: strings.TrimSpace(reqData.Description),
		Priority:    reqData.Priority,
		Status:      models.StatusSubmitted,
	}
	if complaint.Category == "" {
		complaint.Category = models.DefaultCategory
	}
	if complaint.Priority == "" {
		complaint.Priority = models.PriorityMedium
	}

	if err := database.Database.Db.Create(&complaint).Error; err != nil {
		log.Printf("Error saving complaint: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create complaint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint created successfully!", complaint)
}
