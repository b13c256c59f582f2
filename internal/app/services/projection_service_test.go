package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkale/coursehub/internal/app/models"
)

func TestAllLecturesFlattensAndSortsByDate(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	courseA := f.addCourse(t, "Go Basics")
	courseB := f.addCourse(t, "Advanced Go")
	f.addLecture(t, courseA.ID, "Late", day(20))
	f.addLecture(t, courseB.ID, "Early", day(10))
	f.addLecture(t, courseA.ID, "Middle", day(15))

	lectures, err := f.projection.AllLectures(ctx)
	require.NoError(t, err)
	require.Len(t, lectures, 3)

	assert.Equal(t, []string{"Early", "Middle", "Late"}, titlesOf(lectures))
	assert.Equal(t, "Advanced Go", lectures[0].CourseName)
	assert.Equal(t, "Go Basics", lectures[1].CourseName)
}

func TestAllLecturesEmptyStore(t *testing.T) {
	f := newAssignmentFixture(t)

	lectures, err := f.projection.AllLectures(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lectures)
	assert.NotNil(t, lectures)
}

func TestUnassignedLectures(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	courseA := f.addCourse(t, "Go Basics")
	courseB := f.addCourse(t, "Advanced Go")
	assigned := f.addLecture(t, courseA.ID, "Taken", day(10))
	f.addLecture(t, courseA.ID, "Open A", day(12))
	f.addLecture(t, courseB.ID, "Open B", day(11))

	_, err := f.service.AssignLecture(ctx, assigned.ID, courseA.ID, instructor.ID)
	require.NoError(t, err)

	// Global view excludes the assigned lecture.
	lectures, err := f.projection.UnassignedLectures(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open B", "Open A"}, titlesOf(lectures))

	// Scoped to one course.
	lectures, err = f.projection.UnassignedLectures(ctx, &courseA.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open A"}, titlesOf(lectures))
}

func TestUnassignedLecturesUnknownCourse(t *testing.T) {
	f := newAssignmentFixture(t)
	unknown := int64(999)

	lectures, err := f.projection.UnassignedLectures(context.Background(), &unknown)
	require.NoError(t, err)
	assert.Empty(t, lectures)
}

func TestLecturesByInstructor(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	john := f.addInstructor(t, "john")
	jane := f.addInstructor(t, "jane")
	courseA := f.addCourse(t, "Go Basics")
	courseB := f.addCourse(t, "Advanced Go")
	l1 := f.addLecture(t, courseA.ID, "Second", day(16))
	l2 := f.addLecture(t, courseB.ID, "First", day(12))
	l3 := f.addLecture(t, courseB.ID, "Other", day(20))

	_, err := f.service.AssignLecture(ctx, l1.ID, courseA.ID, john.ID)
	require.NoError(t, err)
	_, err = f.service.AssignLecture(ctx, l2.ID, courseB.ID, john.ID)
	require.NoError(t, err)
	_, err = f.service.AssignLecture(ctx, l3.ID, courseB.ID, jane.ID)
	require.NoError(t, err)

	lectures, err := f.projection.LecturesByInstructor(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, titlesOf(lectures))

	// Spans courses.
	assert.Equal(t, "Advanced Go", lectures[0].CourseName)
	assert.Equal(t, "Go Basics", lectures[1].CourseName)
}

func TestLecturesByInstructorNone(t *testing.T) {
	f := newAssignmentFixture(t)
	john := f.addInstructor(t, "john")

	lectures, err := f.projection.LecturesByInstructor(context.Background(), john.ID)
	require.NoError(t, err)
	assert.Empty(t, lectures)
}

func TestInstructorsForCourse(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	john := f.addInstructor(t, "john")
	jane := f.addInstructor(t, "jane")
	course := f.addCourse(t, "Go Basics")
	l1 := f.addLecture(t, course.ID, "a", day(10))
	l2 := f.addLecture(t, course.ID, "b", day(11))
	l3 := f.addLecture(t, course.ID, "c", day(12))

	_, err := f.service.AssignLecture(ctx, l1.ID, course.ID, john.ID)
	require.NoError(t, err)
	_, err = f.service.AssignLecture(ctx, l2.ID, course.ID, jane.ID)
	require.NoError(t, err)
	_, err = f.service.AssignLecture(ctx, l3.ID, course.ID, john.ID)
	require.NoError(t, err)

	instructors, err := f.projection.InstructorsForCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, instructors, 2)
}

func TestInstructorsForCourseUnknownCourse(t *testing.T) {
	f := newAssignmentFixture(t)

	instructors, err := f.projection.InstructorsForCourse(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, instructors)
}

func TestProjectionReflectsLaterChanges(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	instructor := f.addInstructor(t, "john")
	course := f.addCourse(t, "Go Basics")
	lecture := f.addLecture(t, course.ID, "Introduction", day(15))

	before, err := f.projection.UnassignedLectures(ctx, nil)
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = f.service.AssignLecture(ctx, lecture.ID, course.ID, instructor.ID)
	require.NoError(t, err)

	after, err := f.projection.UnassignedLectures(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func titlesOf(lectures []models.ProjectedLecture) []string {
	titles := make([]string, 0, len(lectures))
	for _, l := range lectures {
		titles = append(titles, l.Title)
	}
	return titles
}
