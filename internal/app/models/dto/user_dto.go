package dto

import (
	"time"

	"github.com/makerere/aits/internal/app/models"
)

// UserResponse is the public view of a user
type UserResponse struct {
	ID            int64     `json:"id" example:"1"`
	Email         string    `json:"email" example:"s.nakato@students.mak.ac.ug"`
	FirstName     string    `json:"firstName" example:"Sarah"`
	LastName      string    `json:"lastName" example:"Nakato"`
	FullName      string    `json:"fullName" example:"Sarah Nakato"`
	RoleType      string    `json:"roleType" example:"STUDENT"`
	College       *string   `json:"college,omitempty" example:"COCIS"`
	PhoneNumber   string    `json:"phoneNumber,omitempty"`
	StudentNumber *string   `json:"studentNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserFromModel maps a user model to its response shape
func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		RoleType:      string(u.RoleType),
		College:       u.College,
		PhoneNumber:   u.PhoneNumber,
		StudentNumber: u.StudentNumber,
		CreatedAt:     u.CreatedAt,
	}
}

// UsersFromModels maps a user slice to response shapes
func UsersFromModels(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserFromModel(&users[i]))
	}
	return out
}

// UpdateProfileRequest is the payload for profile updates. The role and
// email are immutable; absent fields are left untouched.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	College     *string `json:"college,omitempty"`
}
