package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"` // stored lower-case
	Password string `gorm:"not null"`             // bcrypt hash
	Role     string `gorm:"default:'user'"`
}
