package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/models"
)

type User struct {
	ID        uuid.UUID  `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Name      string     `json:"name" example:"Ada Lovelace"`
	Email     string     `json:"email" example:"ada@example.com"`
	CreatedAt time.Time  `json:"created_at" example:"2025-03-01T09:12:00Z"`
	LastLogin *time.Time `json:"last_login" example:"2025-03-14T18:02:11Z"`
}

func newUser(u models.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

type UserResponse struct {
	Data User `json:"data"` // Data for the user
}

type SignupEditable struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

type LoginEditable struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

type LoginResponse struct {
	Access  string `json:"access"`                          // Access token for the Authorization header
	Refresh string `json:"refresh"`                         // Refresh token to obtain new access tokens
	Name    string `json:"name" example:"Ada Lovelace"`     // Name of the user
	Email   string `json:"email" example:"ada@example.com"` // Email address of the user
}

type RefreshEditable struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"` // New access token
}

type PasswordResetEditable struct {
	Email string `json:"email" example:"ada@example.com"`
}

type PasswordResetConfirmEditable struct {
	UIDB64          string `json:"uidb64"`
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ProfileEditable struct {
	Name *string `json:"name" example:"Ada King"`
}
