package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(userRepo, jwtService), userRepo
}

func TestRegisterCreatesInstructor(t *testing.T) {
	service, _ := newAuthFixture(t)

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "new@test.com",
		Password: "password123",
		Name:     "New Instructor",
	})
	require.NoError(t, err)

	user, ok := resp.User.(*models.User)
	require.True(t, ok)
	assert.Equal(t, models.RoleInstructor, user.RoleType)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Email: "dup@test.com", Password: "password123", Name: "First"}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	_, err = service.Register(ctx, req)
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &dto.RegisterRequest{Email: "not-an-email", Password: "password123", Name: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = service.Register(ctx, &dto.RegisterRequest{Email: "ok@test.com", Password: "short1", Name: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	// Letters only, no digit.
	_, err = service.Register(ctx, &dto.RegisterRequest{Email: "ok@test.com", Password: "passwordonly", Name: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestLogin(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &dto.RegisterRequest{Email: "login@test.com", Password: "password123", Name: "x"})
	require.NoError(t, err)

	resp, err := service.Login(ctx, &dto.LoginRequest{Email: "login@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
}

func TestLoginBadCredentials(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &dto.RegisterRequest{Email: "login@test.com", Password: "password123", Name: "x"})
	require.NoError(t, err)

	// Wrong password and unknown email look identical to the caller.
	_, err = service.Login(ctx, &dto.LoginRequest{Email: "login@test.com", Password: "wrongpass1"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = service.Login(ctx, &dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestGetProfile(t *testing.T) {
	service, userRepo := newAuthFixture(t)
	ctx := context.Background()

	resp, err := service.Register(ctx, &dto.RegisterRequest{Email: "me@test.com", Password: "password123", Name: "Me"})
	require.NoError(t, err)
	registered := resp.User.(*models.User)

	user, err := service.GetProfile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@test.com", user.Email)

	_, err = service.GetProfile(ctx, 999)
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))

	// Password hash never round-trips through the fake unhashed.
	stored, err := userRepo.GetByEmail(ctx, "me@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
}
