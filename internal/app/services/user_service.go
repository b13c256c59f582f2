package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/filestorage"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

// UserService implements the instructor directory and profile updates.
type UserService struct {
	userRepo    repositories.IUserRepository
	fileStorage filestorage.FileStorage
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, fileStorage filestorage.FileStorage) *UserService {
	return &UserService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetInstructors returns every instructor account, ordered by name.
func (s *UserService) GetInstructors(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetInstructors(ctx)
}

// UpdateProfile updates the caller's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if req.Mobile != nil {
		user.Mobile = req.Mobile
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return s.userRepo.GetByID(ctx, userID)
}

// UpdateAvatar stores a new avatar image for the user and replaces any
// previous one.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.fileStorage.SaveFile(file, "avatars")
	if err != nil {
		return nil, fmt.Errorf("error saving avatar: %w", err)
	}

	old := user.AvatarURL
	user.AvatarURL = &avatarURL
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if old != nil && *old != "" {
		if err := s.fileStorage.DeleteFile(*old); err != nil {
			logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to delete previous avatar")
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}
