package dto

import (
	"time"

	"github.com/yukikurage/planner-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is the body of GET /api/auth/session. User is null when
// nobody is signed in.
type SessionResponse struct {
	User *UserDTO `json:"user"`
}

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdateProfileRequest carries the fields to change; absent fields are kept.
type UpdateProfileRequest struct {
	DisplayName          *string `json:"display_name" binding:"omitempty,max=100"`
	Theme                *string `json:"theme" binding:"omitempty,max=40"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	Timezone             *string `json:"timezone" binding:"omitempty,max=64"`
}

type SelectPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free standard premium"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
