package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email         string    `json:"email" db:"email" example:"s.nakato@students.mak.ac.ug"`   // User's email address
	Password      string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName     string    `json:"firstName" db:"first_name" example:"Sarah"`                // User's first name
	LastName      string    `json:"lastName" db:"last_name" example:"Nakato"`                 // User's last name
	RoleType      RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`                // User's role, fixed at registration
	College       *string   `json:"college,omitempty" db:"college"`                           // College label (nullable)
	PhoneNumber   string    `json:"phoneNumber,omitempty" db:"phone_number"`                  // Contact phone number
	StudentNumber *string   `json:"studentNumber,omitempty" db:"student_number"`              // Student number, required for students (nullable)
	CreatedAt     time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// FullName returns the user's display name as used in notification messages
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
