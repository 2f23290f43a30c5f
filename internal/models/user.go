package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a person using Pennywise. All expenses and budgets belong to a user.
type User struct {
	DefaultModel
	Name         string     `gorm:"size:255"`
	Email        string     `gorm:"uniqueIndex:idx_users_email;size:255"`
	PasswordHash string     `gorm:"size:255"`
	LastLogin    *time.Time ``
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)

	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return invalid("email", "the email address is not valid")
	}

	if len(u.Name) > 255 {
		return invalid("name", "the name must be at most 255 characters long")
	}

	return nil
}

// FindUser returns the user with the given ID.
func FindUser(db *gorm.DB, id uuid.UUID) (User, error) {
	var user User
	err := db.First(&user, "id = ?", id).Error
	return user, err
}

// FindUserByEmail returns the user with the given email address.
func FindUserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.First(&user, "email = ?", NormalizeEmail(email)).Error
	return user, err
}
