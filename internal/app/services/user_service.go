package services

import (
	"context"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// userRepository is the user repository surface the user service needs
type userRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, role *models.RoleType) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) error
}

// UserService handles profile access and the user directory
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User, roleFilter *string) ([]models.User, error)
}

type userService struct {
	users userRepository
}

// NewUserService creates a new UserService
func NewUserService(users userRepository) UserService {
	return &userService{users: users}
}

// GetProfile retrieves a user by ID
func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile applies the present fields to the user's own profile.
// Email and role are immutable here.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}
	if req.College != nil {
		fields["college"] = *req.College
	}

	if len(fields) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.users.GetUserByID(ctx, userID)
}

// ListUsers retrieves users, optionally filtered by role. Any
// authenticated user may browse the directory.
func (s *userService) ListUsers(ctx context.Context, _ *models.User, roleFilter *string) ([]models.User, error) {
	var role *models.RoleType
	if roleFilter != nil && *roleFilter != "" {
		r := models.RoleType(*roleFilter)
		if !r.Valid() {
			return nil, apperrors.NewValidationError("Invalid role type filter")
		}
		role = &r
	}

	return s.users.ListUsers(ctx, role)
}
