package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

func TestListUsers_AnyAuthenticatedRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(student, lecturer, registrar, otherStudent))

	// Students browse the directory like everyone else.
	users, err := svc.ListUsers(context.Background(), student, nil)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	lecturers, err := svc.ListUsers(context.Background(), student, strPtr("LECTURER"))
	require.NoError(t, err)
	require.Len(t, lecturers, 1)
	assert.Equal(t, lecturer.ID, lecturers[0].ID)

	_, err = svc.ListUsers(context.Background(), student, strPtr("DEAN"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfile_AppliesPresentFields(t *testing.T) {
	user := &models.User{ID: 40, FirstName: "Peter", LastName: "Wasswa",
		RoleType: models.RoleLecturer, College: strPtr("CEDAT")}
	svc := NewUserService(newFakeUserRepo(user))

	updated, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		FirstName: strPtr("Petero"),
		College:   strPtr("COCIS"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Petero", updated.FirstName)
	assert.Equal(t, "Wasswa", updated.LastName)
	require.NotNil(t, updated.College)
	assert.Equal(t, "COCIS", *updated.College)
}
