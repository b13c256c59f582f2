package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

// fakeCourseRepo is an in-memory course store for service tests. The
// per-instructor lock mirrors the database advisory lock with a plain mutex.
type fakeCourseRepo struct {
	mu         sync.Mutex
	lockMu     sync.Mutex
	courses    map[int64]*models.Course
	nextCourse int64
	nextLect   int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:    map[int64]*models.Course{},
		nextCourse: 1,
		nextLect:   1,
	}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course.ID = f.nextCourse
	f.nextCourse++
	clone := *course
	clone.Lectures = append([]models.Lecture{}, course.Lectures...)
	f.courses[course.ID] = &clone
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	clone := *course
	clone.Lectures = append([]models.Lecture{}, course.Lectures...)
	return &clone, nil
}

func (f *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.courses))
	for id := range f.courses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		clone := *f.courses[id]
		clone.Lectures = append([]models.Lecture{}, f.courses[id].Lectures...)
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	stored.Name = course.Name
	stored.Level = course.Level
	stored.Description = course.Description
	stored.ImageURL = course.ImageURL
	return nil
}

func (f *fakeCourseRepo) UpdateImage(_ context.Context, id int64, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	stored.ImageURL = imageURL
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) AddLecture(_ context.Context, lecture *models.Lecture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[lecture.CourseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	lecture.ID = f.nextLect
	f.nextLect++
	course.Lectures = append(course.Lectures, *lecture)
	sort.SliceStable(course.Lectures, func(i, j int) bool {
		return course.Lectures[i].Date.Before(course.Lectures[j].Date)
	})
	return nil
}

func (f *fakeCourseRepo) GetLectureInCourse(_ context.Context, lectureID, courseID int64) (*models.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[courseID]
	if !ok {
		return nil, apperrors.ErrLectureNotFound
	}
	lecture := course.LectureByID(lectureID)
	if lecture == nil {
		return nil, apperrors.ErrLectureNotFound
	}
	clone := *lecture
	return &clone, nil
}

func (f *fakeCourseRepo) AssignInstructor(_ context.Context, lectureID int64, assignment models.InstructorAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, course := range f.courses {
		if lecture := course.LectureByID(lectureID); lecture != nil {
			lecture.Instructor = assignment
			return nil
		}
	}
	return apperrors.ErrLectureNotFound
}

func (f *fakeCourseRepo) WithInstructorLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	// One global mutex is stricter than per-instructor; fine for tests.
	f.lockMu.Lock()
	defer f.lockMu.Unlock()
	return fn(ctx)
}

// fakeUserRepo is an in-memory user directory for service tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetInstructors(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.User{}
	for _, user := range f.users {
		if user.RoleType == models.RoleInstructor {
			clone := *user
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.User{}
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			clone := *user
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Mobile = user.Mobile
	stored.Bio = user.Bio
	stored.AvatarURL = user.AvatarURL
	return nil
}
