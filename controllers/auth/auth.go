package authController

import (
	"cdesk/config"
	"cdesk/database"
	"cdesk/middleware"
	"cdesk/models"
	authValidators "cdesk/validators/auth"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ShowRegister(c *fiber.Ctx) error {
	return middleware.Render(c, "register", nil)
}

// Register creates a new user account. Role is always "user"; admins are
// provisioned out-of-band. The duplicate-email check is the store's
// unique constraint, not a pre-check query, so there is no race window.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidators.RegisterInput)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process your request")
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := database.Database.Db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			middleware.AddFlash(c, "warning", "Email already registered")
			return middleware.Render(c.Status(fiber.StatusConflict), "register", fiber.Map{
				"Name":  reqData.Name,
				"Email": reqData.Email,
			})
		}
		log.Printf("Error saving user to database: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to register user")
	}

	middleware.AddFlash(c, "success", "Registration successful. Please login.")
	return c.Redirect("/login")
}

func ShowLogin(c *fiber.Ctx) error {
	return middleware.Render(c, "login", nil)
}

// Login verifies credentials and populates the session. Failures get one
// generic notice that never reveals whether the email exists.
func Login(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	var user models.User
	err := database.Database.Db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error looking up user: %v", err)
		}
		middleware.AddFlash(c, "danger", "Invalid credentials")
		return middleware.Render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Email": email})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		middleware.AddFlash(c, "danger", "Invalid credentials")
		return middleware.Render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Email": email})
	}

	if err := middleware.SetIdentity(c, user); err != nil {
		log.Printf("Error saving session: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start session")
	}

	middleware.AddFlash(c, "success", "Welcome, "+user.Name)
	if user.Role == models.RoleAdmin {
		return c.Redirect("/admin")
	}
	return c.Redirect("/dashboard")
}

// Logout clears all session state unconditionally.
func Logout(c *fiber.Ctx) error {
	if err := middleware.ClearSession(c); err != nil {
		log.Printf("Error destroying session: %v", err)
	}
	middleware.AddFlash(c, "info", "Logged out successfully")
	return c.Redirect("/")
}
