package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

// AssignmentService owns the instructor-assignment workflow. All writes for a
// given instructor are serialized through the repository's per-instructor
// lock so that two concurrent assignments cannot both pass the conflict scan.
type AssignmentService struct {
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
	projection *LectureProjection
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	courseRepo repositories.ICourseRepository,
	userRepo repositories.IUserRepository,
	projection *LectureProjection,
) *AssignmentService {
	return &AssignmentService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		projection: projection,
	}
}

// AssignLecture assigns an instructor to a lecture after checking that the
// instructor has no other lecture on the same calendar day, anywhere in the
// system. Re-assigning the same instructor to the same lecture succeeds: the
// scan skips the target lecture itself. Returns the updated course.
func (s *AssignmentService) AssignLecture(ctx context.Context, lectureID, courseID, instructorID int64) (*models.Course, error) {
	err := s.courseRepo.WithInstructorLock(ctx, instructorID, func(ctx context.Context) error {
		lecture, err := s.courseRepo.GetLectureInCourse(ctx, lectureID, courseID)
		if err != nil {
			return err
		}

		instructor, err := s.userRepo.GetByID(ctx, instructorID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.NewNotFoundError(apperrors.ErrInstructorNotFound, fmt.Sprintf("Instructor with ID %d not found", instructorID))
			}
			return err
		}
		if instructor.RoleType != models.RoleInstructor {
			return apperrors.NewNotFoundError(apperrors.ErrInstructorNotFound, fmt.Sprintf("User with ID %d is not an instructor", instructorID))
		}

		all, err := s.projection.AllLectures(ctx)
		if err != nil {
			return err
		}
		for i := range all {
			other := &all[i]
			if other.ID == lectureID {
				continue
			}
			if other.Instructor.Is(instructorID) && other.SameCalendarDay(lecture.Date) {
				return apperrors.NewSchedulingConflictError(
					fmt.Sprintf("%s is already scheduled for %q on %s", instructor.Name, other.Title, other.Date.UTC().Format("2006-01-02")),
					map[string]interface{}{
						"conflictingLectureId":    other.ID,
						"conflictingLectureTitle": other.Title,
						"conflictingCourseName":   other.CourseName,
						"date":                    other.Date.UTC().Format("2006-01-02"),
					},
				)
			}
		}

		return s.courseRepo.AssignInstructor(ctx, lectureID, models.AssignedTo(instructorID))
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("lecture_id", lectureID).
		Int64("course_id", courseID).
		Int64("instructor_id", instructorID).
		Msg("Instructor assigned to lecture")

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error reloading course after assignment: %w", err)
	}
	return course, nil
}
