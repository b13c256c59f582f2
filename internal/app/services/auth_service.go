package services

import (
	"context"
	"regexp"
	"unicode"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/auth"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new instructor account and returns it with a fresh
// token. Admin accounts are provisioned by seeding, never through this
// endpoint.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !emailRegex.MatchString(req.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		RoleType: models.RoleInstructor,
		Mobile:   req.Mobile,
		Bio:      req.Bio,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return s.buildAuthResponse(user)
}

// Login verifies credentials and returns the user with a fresh token. A wrong
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.Debug().Int64("user_id", user.ID).Msg("User logged in")
	return s.buildAuthResponse(user)
}

// GetProfile returns the account behind an authenticated request.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user,
	}, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("Password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("Password must contain at least one letter and one digit")
	}
	return nil
}
