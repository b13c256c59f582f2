package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

// LectureProjection derives the flat, cross-course lecture views from the
// course store. Every call recomputes from current store state; nothing is
// cached and nothing is mutated.
type LectureProjection struct {
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
}

// NewLectureProjection creates a new LectureProjection
func NewLectureProjection(courseRepo repositories.ICourseRepository, userRepo repositories.IUserRepository) *LectureProjection {
	return &LectureProjection{
		courseRepo: courseRepo,
		userRepo:   userRepo,
	}
}

// AllLectures returns every lecture across all courses, each carrying its
// course name, sorted ascending by date.
func (p *LectureProjection) AllLectures(ctx context.Context) ([]models.ProjectedLecture, error) {
	courses, err := p.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading courses for projection: %w", err)
	}

	return flattenSorted(courses, nil), nil
}

// UnassignedLectures returns lectures without an instructor, sorted ascending
// by date. When courseID is non-nil the view is scoped to that course; an
// unknown course yields an empty sequence, not an error.
func (p *LectureProjection) UnassignedLectures(ctx context.Context, courseID *int64) ([]models.ProjectedLecture, error) {
	unassigned := func(l *models.Lecture) bool { return !l.Instructor.IsAssigned() }

	if courseID != nil {
		course, err := p.courseRepo.GetByID(ctx, *courseID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return []models.ProjectedLecture{}, nil
			}
			return nil, fmt.Errorf("error loading course for projection: %w", err)
		}
		return flattenSorted([]*models.Course{course}, unassigned), nil
	}

	courses, err := p.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading courses for projection: %w", err)
	}
	return flattenSorted(courses, unassigned), nil
}

// LecturesByInstructor returns the lectures assigned to one instructor across
// all courses, sorted ascending by date.
func (p *LectureProjection) LecturesByInstructor(ctx context.Context, instructorID int64) ([]models.ProjectedLecture, error) {
	courses, err := p.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading courses for projection: %w", err)
	}

	return flattenSorted(courses, func(l *models.Lecture) bool {
		return l.Instructor.Is(instructorID)
	}), nil
}

// InstructorsForCourse returns the distinct instructors referenced by a
// course's lectures. Ids that do not resolve are silently dropped; an unknown
// course yields an empty set.
func (p *LectureProjection) InstructorsForCourse(ctx context.Context, courseID int64) ([]*models.User, error) {
	course, err := p.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return []*models.User{}, nil
		}
		return nil, fmt.Errorf("error loading course for projection: %w", err)
	}

	seen := map[int64]bool{}
	ids := []int64{}
	for i := range course.Lectures {
		if id, ok := course.Lectures[i].Instructor.InstructorID(); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	instructors, err := p.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving instructors: %w", err)
	}
	return instructors, nil
}

// flattenSorted flattens courses into projected lectures matching keep (nil
// keeps everything) and sorts ascending by date, stable so that ties keep
// store order.
func flattenSorted(courses []*models.Course, keep func(*models.Lecture) bool) []models.ProjectedLecture {
	projected := []models.ProjectedLecture{}
	for _, course := range courses {
		for i := range course.Lectures {
			if keep != nil && !keep(&course.Lectures[i]) {
				continue
			}
			projected = append(projected, models.ProjectedLecture{
				Lecture:    course.Lectures[i],
				CourseName: course.Name,
			})
		}
	}

	sort.SliceStable(projected, func(i, j int) bool {
		return projected[i].Date.Before(projected[j].Date)
	})

	return projected
}
