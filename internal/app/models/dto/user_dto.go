package dto

import (
	"time"

	"github.com/meric/queryportal/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID         int64     `json:"id"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	RollNo     *string   `json:"rollNo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model to its response form.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Role:       string(u.Role),
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		RollNo:     u.RollNo,
		CreatedAt:  u.CreatedAt,
	}
}

// UpdateProfileRequest represents profile update data.
// RollNo is required for students and ignored for teachers.
type UpdateProfileRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,max=100"`
	RollNo     string `json:"rollNo,omitempty"`
}
