package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/auth"
)

type fakeAuthUserRepo struct {
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]*models.User
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{
		nextID:  1,
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeAuthUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return user.ID, nil
}

func (f *fakeAuthUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeTokenRecord struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenRepo struct {
	tokens map[string]*fakeTokenRecord
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*fakeTokenRecord)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &fakeTokenRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenRepo) GetTokenUserID(_ context.Context, token string) (int64, error) {
	record, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if record.expiresAt.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return record.userID, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	record, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:         "s.nakato@students.mak.ac.ug",
		Password:      "Password123!",
		FirstName:     "Sarah",
		LastName:      "Nakato",
		RoleType:      "STUDENT",
		College:       strPtr("COCIS"),
		StudentNumber: strPtr("2300701234"),
	}
}

func TestRegister_RoleConditionalValidation(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo(), newFakeTokenRepo(), testJWTService())

	t.Run("student without student number", func(t *testing.T) {
		req := validRegistration()
		req.StudentNumber = nil
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("lecturer without college", func(t *testing.T) {
		req := validRegistration()
		req.RoleType = "LECTURER"
		req.StudentNumber = nil
		req.College = nil
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("admin needs neither", func(t *testing.T) {
		req := validRegistration()
		req.RoleType = "ADMIN"
		req.College = nil
		req.StudentNumber = nil
		resp, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.User.RoleType)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := validRegistration()
		req.RoleType = "DEAN"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo, newFakeTokenRepo(), testJWTService())

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, 3600, resp.Token.ExpiresIn)
	assert.Equal(t, "Sarah Nakato", resp.User.FullName)

	// The stored password is hashed, never the plaintext.
	stored, err := repo.GetUserByEmail(context.Background(), "s.nakato@students.mak.ac.ug")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", stored.Password)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "s.nakato@students.mak.ac.ug",
		Password: "Password123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token.AccessToken)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "s.nakato@students.mak.ac.ug",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@students.mak.ac.ug",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo(), newFakeTokenRepo(), testJWTService())

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRefresh_RotatesToken(t *testing.T) {
	tokens := newFakeTokenRepo()
	svc := NewAuthService(newFakeAuthUserRepo(), tokens, testJWTService())

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, resp.Token.RefreshToken, refreshed.RefreshToken)

	// The presented token is single-use.
	_, err = svc.Refresh(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The rotated token still works.
	_, err = svc.Refresh(context.Background(), refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_UnknownAndExpiredTokens(t *testing.T) {
	tokens := newFakeTokenRepo()
	svc := NewAuthService(newFakeAuthUserRepo(), tokens, testJWTService())

	_, err := svc.Refresh(context.Background(), "nonexistent-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	tokens.tokens[resp.Token.RefreshToken].expiresAt = time.Now().Add(-time.Minute)
	_, err = svc.Refresh(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
