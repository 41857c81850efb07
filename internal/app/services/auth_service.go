package services

import (
	"context"
	"errors"
	"time"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/auth"
	"github.com/makerere/aits/internal/pkg/logger"
)

// authUserRepository is the user repository surface the auth service needs
type authUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// authTokenRepository persists and redeems refresh tokens
type authTokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetTokenUserID(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService handles registration and authentication
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

type authService struct {
	users  authUserRepository
	tokens authTokenRepository
	jwt    *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users authUserRepository, tokens authTokenRepository, jwt *auth.JWTService) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
	}
}

// validateRoleFields enforces the role-conditional registration rules:
// students need a student number, and every role except admin needs a
// college.
func validateRoleFields(role models.RoleType, req dto.RegisterRequest) error {
	if role == models.RoleStudent && (req.StudentNumber == nil || *req.StudentNumber == "") {
		return apperrors.NewValidationError("Student number is required for students")
	}
	if role != models.RoleAdmin && (req.College == nil || *req.College == "") {
		return apperrors.NewValidationError("College is required for this role")
	}
	return nil
}

// Register creates a user account and returns a token pair
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.RoleType(req.RoleType)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role type")
	}
	if err := validateRoleFields(role, req); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:         req.Email,
		Password:      hashed,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RoleType:      role,
		College:       req.College,
		PhoneNumber:   req.PhoneNumber,
		StudentNumber: req.StudentNumber,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, created)
}

// Login authenticates a user and returns a token pair
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh redeems a refresh token for a new pair. The presented token is
// revoked so each refresh token is single-use.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.GetTokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &resp.Token, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, user.ID, s.jwt.RefreshTokenExpiry()); err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to persist refresh token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    expiresIn,
		},
		User: dto.UserFromModel(user),
	}, nil
}
