package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

type assignmentFixture struct {
	courseRepo *fakeCourseRepo
	userRepo   *fakeUserRepo
	service    *AssignmentService
	projection *LectureProjection
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	courseRepo := newFakeCourseRepo()
	userRepo := newFakeUserRepo()
	projection := NewLectureProjection(courseRepo, userRepo)
	return &assignmentFixture{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		service:    NewAssignmentService(courseRepo, userRepo, projection),
		projection: projection,
	}
}

func (f *assignmentFixture) addInstructor(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    name + "@test.com",
		Password: "x",
		Name:     name,
		RoleType: models.RoleInstructor,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *assignmentFixture) addCourse(t *testing.T, name string) *models.Course {
	t.Helper()
	course := &models.Course{Name: name, Level: models.LevelBeginner}
	require.NoError(t, f.courseRepo.Create(context.Background(), course))
	return course
}

func (f *assignmentFixture) addLecture(t *testing.T, courseID int64, title string, date time.Time) *models.Lecture {
	t.Helper()
	lecture := &models.Lecture{
		CourseID:        courseID,
		Title:           title,
		Date:            date,
		DurationMinutes: 60,
		Instructor:      models.Unassigned(),
	}
	require.NoError(t, f.courseRepo.AddLecture(context.Background(), lecture))
	return lecture
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 10, 0, 0, 0, time.UTC)
}

func TestAssignLecture(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	updated, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, instructor.ID)
	require.NoError(t, err)

	got := updated.LectureByID(lecture.ID)
	require.NotNil(t, got)
	assert.True(t, got.Instructor.Is(instructor.ID))
}

func TestAssignLectureSameDayConflict(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	courseA := f.addCourse(t, "Go Basics")
	courseB := f.addCourse(t, "Advanced Go")
	lectureA := f.addLecture(t, courseA.ID, "Introduction", day(15))
	lectureB := f.addLecture(t, courseB.ID, "Generics", day(15).Add(5*time.Hour))

	_, err := f.service.AssignLecture(ctx, lectureA.ID, courseA.ID, instructor.ID)
	require.NoError(t, err)

	// Same calendar day in another course is rejected, and the error names
	// the lecture already scheduled.
	_, err = f.service.AssignLecture(ctx, lectureB.ID, courseB.ID, instructor.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSchedulingConflict))

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "Introduction", customErr.Details["conflictingLectureTitle"])
	assert.Equal(t, "Go Basics", customErr.Details["conflictingCourseName"])

	// The failed attempt left nothing behind.
	stored, err := f.courseRepo.GetLectureInCourse(ctx, lectureB.ID, courseB.ID)
	require.NoError(t, err)
	assert.False(t, stored.Instructor.IsAssigned())
}

func TestAssignLectureDifferentDaysAllowed(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")
	first := f.addLecture(t, course.ID, "Introduction", day(15))
	second := f.addLecture(t, course.ID, "Structs", day(16))

	_, err := f.service.AssignLecture(ctx, first.ID, course.ID, instructor.ID)
	require.NoError(t, err)
	_, err = f.service.AssignLecture(ctx, second.ID, course.ID, instructor.ID)
	require.NoError(t, err)
}

func TestAssignLectureReassignSameLectureIdempotent(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	_, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, instructor.ID)
	require.NoError(t, err)

	// The lecture does not conflict with itself.
	updated, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, instructor.ID)
	require.NoError(t, err)
	assert.True(t, updated.LectureByID(lecture.ID).Instructor.Is(instructor.ID))
}

func TestAssignLectureReplacesInstructor(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	john := f.addInstructor(t, "john")
	jane := f.addInstructor(t, "jane")
	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	_, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, john.ID)
	require.NoError(t, err)

	updated, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, jane.ID)
	require.NoError(t, err)
	assert.True(t, updated.LectureByID(lecture.ID).Instructor.Is(jane.ID))

	// John is free again on that day.
	other := f.addLecture(t, course.ID, "Recap", day(15).Add(3*time.Hour))
	_, err = f.service.AssignLecture(ctx, other.ID, course.ID, john.ID)
	require.NoError(t, err)
}

func TestAssignLectureUnknownTargets(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	_, err := f.service.AssignLecture(ctx, 999, course.ID, instructor.ID)
	assert.True(t, errors.Is(err, apperrors.ErrLectureNotFound))

	_, err = f.service.AssignLecture(ctx, lecture.ID, 999, instructor.ID)
	assert.True(t, errors.Is(err, apperrors.ErrLectureNotFound))

	_, err = f.service.AssignLecture(ctx, lecture.ID, course.ID, 999)
	assert.True(t, errors.Is(err, apperrors.ErrInstructorNotFound))
}

func TestAssignLectureRejectsNonInstructor(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	admin := &models.User{Email: "admin@test.com", Password: "x", Name: "Admin", RoleType: models.RoleAdmin}
	require.NoError(t, f.userRepo.Create(ctx, admin))

	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	_, err := f.service.AssignLecture(ctx, lecture.ID, course.ID, admin.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInstructorNotFound))
}

func TestAssignLectureConcurrentSameDay(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")

	const n = 8
	lectures := make([]*models.Lecture, n)
	for i := 0; i < n; i++ {
		lectures[i] = f.addLecture(t, course.ID, fmt.Sprintf("Session %d", i), day(15).Add(time.Duration(i)*time.Minute))
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.service.AssignLecture(ctx, lectures[i].ID, course.ID, instructor.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, apperrors.ErrSchedulingConflict))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one same-day assignment may win")
}
