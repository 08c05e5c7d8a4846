package database

import (
	"cdesk/config"
	"cdesk/models"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL, or to a local sqlite
// file when DB_HOST is not configured.
func ConnectDb() {
	var dialector gorm.Dialector
	if config.AppConfig.DBHost != "" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.AppConfig.DBHost,
			config.AppConfig.DBUser,
			config.AppConfig.DBPassword,
			config.AppConfig.DBName,
			config.AppConfig.DBPort,
		)
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(config.AppConfig.DBName)
	}

	// TranslateError maps driver unique-violation errors to
	// gorm.ErrDuplicatedKey, which the conflict handling relies on.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}

	if err := SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintHistory{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// SeedAdmin provisions the admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Registration always creates plain users, so this is the only way an
// admin comes into existence.
func SeedAdmin(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(config.AppConfig.AdminEmail))
	password := config.AppConfig.AdminPassword
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     config.AppConfig.AdminName,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
