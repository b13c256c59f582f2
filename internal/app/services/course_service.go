package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/filestorage"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

// CourseService implements CRUD over courses and their lecture batches.
type CourseService struct {
	courseRepo  repositories.ICourseRepository
	fileStorage filestorage.FileStorage
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, fileStorage filestorage.FileStorage) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		fileStorage: fileStorage,
	}
}

// CreateCourse creates a course from the request. The course starts with an
// empty lecture batch.
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !req.Level.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid course level: %s", req.Level))
	}

	course := &models.Course{
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("course_id", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// GetCourseByID returns one course with its lectures.
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses returns every course with its lectures embedded.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// UpdateCourse applies a partial update; nil request fields leave the stored
// value unchanged.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Level != nil {
		if !req.Level.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid course level: %s", *req.Level))
		}
		course.Level = *req.Level
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course and, through the store, its lectures.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if course.ImageURL != "" {
		if err := s.fileStorage.DeleteFile(course.ImageURL); err != nil {
			logger.Warn().Err(err).Int64("course_id", id).Msg("Failed to delete course image file")
		}
	}

	logger.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}

// AddLecture appends a new, unassigned lecture to a course's batch.
func (s *CourseService) AddLecture(ctx context.Context, courseID int64, req *dto.AddLectureRequest) (*models.Course, error) {
	lecture := &models.Lecture{
		CourseID:        courseID,
		Title:           req.Title,
		Date:            req.Date,
		DurationMinutes: req.Duration,
		Instructor:      models.Unassigned(),
	}

	if err := s.courseRepo.AddLecture(ctx, lecture); err != nil {
		return nil, err
	}

	logger.Info().Int64("course_id", courseID).Int64("lecture_id", lecture.ID).Msg("Lecture added to course")
	return s.courseRepo.GetByID(ctx, courseID)
}

// UpdateCourseImage stores a new cover image for the course and replaces any
// previous one.
func (s *CourseService) UpdateCourseImage(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.fileStorage.SaveFile(file, "courses")
	if err != nil {
		return nil, fmt.Errorf("error saving course image: %w", err)
	}

	oldURL := course.ImageURL
	if err := s.courseRepo.UpdateImage(ctx, id, imageURL); err != nil {
		return nil, err
	}

	if oldURL != "" {
		if err := s.fileStorage.DeleteFile(oldURL); err != nil {
			logger.Warn().Err(err).Int64("course_id", id).Msg("Failed to delete previous course image")
		}
	}

	return s.courseRepo.GetByID(ctx, id)
}
