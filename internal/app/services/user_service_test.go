package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

func TestGetInstructorsExcludesAdmins(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, fakeStorage{})
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "a@test.com", Name: "Zoe", RoleType: models.RoleInstructor}))
	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "b@test.com", Name: "Adam", RoleType: models.RoleInstructor}))
	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "admin@test.com", Name: "Admin", RoleType: models.RoleAdmin}))

	instructors, err := service.GetInstructors(ctx)
	require.NoError(t, err)

	require.Len(t, instructors, 2)
	// Ordered by name.
	assert.Equal(t, "Adam", instructors[0].Name)
	assert.Equal(t, "Zoe", instructors[1].Name)
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, fakeStorage{})
	ctx := context.Background()

	user := &models.User{Email: "a@test.com", Name: "Old Name", RoleType: models.RoleInstructor}
	require.NoError(t, userRepo.Create(ctx, user))

	bio := "teaches Go"
	updated, err := service.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Name: "New Name", Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "teaches Go", *updated.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	service := NewUserService(newFakeUserRepo(), fakeStorage{})

	_, err := service.UpdateProfile(context.Background(), 999, &dto.UpdateProfileRequest{Name: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}
