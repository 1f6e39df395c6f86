package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Role         Role      `json:"role" db:"role" example:"student"`                        // User's role (student or teacher)
	Name         string    `json:"name" db:"name" example:"Asha Rao"`                       // User's full name
	Email        string    `json:"email" db:"email" example:"asha@college.edu"`             // User's email address (unique)
	PasswordHash string    `json:"-" db:"password_hash"`                                    // Hashed password (excluded from JSON)
	Department   string    `json:"department" db:"department" example:"Mathematics"`        // User's department
	RollNo       *string   `json:"rollNo,omitempty" db:"roll_no" example:"21MA042"`         // Roll number, students only (nullable)
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
