package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/db"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
	"github.com/devkale/coursehub/internal/pkg/dberrors"
	"github.com/devkale/coursehub/internal/pkg/logger"
)

// assignmentLockClass namespaces the advisory locks taken while assigning an
// instructor, so they cannot collide with other advisory lock users.
const assignmentLockClass = 0x5EDA

// ICourseRepository defines the course store contract: courses together with
// the lectures they own.
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error

	AddLecture(ctx context.Context, lecture *models.Lecture) error
	GetLectureInCourse(ctx context.Context, lectureID, courseID int64) (*models.Lecture, error)
	AssignInstructor(ctx context.Context, lectureID int64, assignment models.InstructorAssignment) error

	// WithInstructorLock runs fn while holding a per-instructor lock, so two
	// concurrent assignments for the same instructor cannot both pass the
	// conflict check before either writes.
	WithInstructorLock(ctx context.Context, instructorID int64, fn func(ctx context.Context) error) error
}

// CourseRepository handles course and lecture database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course. Lectures are added separately.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "level", "description", "image_url").
		Values(course.Name, course.Level, course.Description, course.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	if course.Lectures == nil {
		course.Lectures = []models.Lecture{}
	}
	return nil
}

// GetByID retrieves a course and its lectures by course id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "level", "description", "image_url", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.Name, &course.Level, &course.Description,
		&course.ImageURL, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	lectures, err := r.lecturesForCourses(ctx, squirrel.Eq{"course_id": id})
	if err != nil {
		return nil, err
	}
	course.Lectures = lectures

	return course, nil
}

// GetAll retrieves all courses with their lectures embedded
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "level", "description", "image_url", "created_at", "updated_at").
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	byID := map[int64]*models.Course{}
	for rows.Next() {
		course := &models.Course{Lectures: []models.Lecture{}}
		if err := rows.Scan(
			&course.ID, &course.Name, &course.Level, &course.Description,
			&course.ImageURL, &course.CreatedAt, &course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
		byID[course.ID] = course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lectures, err := r.lecturesForCourses(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, lecture := range lectures {
		if course, ok := byID[lecture.CourseID]; ok {
			course.Lectures = append(course.Lectures, lecture)
		}
	}

	return courses, nil
}

// lecturesForCourses fetches lectures matching pred, ordered by date.
func (r *CourseRepository) lecturesForCourses(ctx context.Context, pred interface{}) ([]models.Lecture, error) {
	builder := r.sb.Select("id", "course_id", "title", "date", "duration_minutes", "instructor_id").
		From("lectures").
		OrderBy("date ASC", "id ASC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lectures query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lectures: %w", err)
	}
	defer rows.Close()

	lectures := []models.Lecture{}
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, *lecture)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lectures, nil
}

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	lecture := &models.Lecture{}
	var instructorID *int64
	if err := row.Scan(
		&lecture.ID, &lecture.CourseID, &lecture.Title,
		&lecture.Date, &lecture.DurationMinutes, &instructorID,
	); err != nil {
		return nil, err
	}
	lecture.Instructor = models.FromNullableID(instructorID)
	return lecture, nil
}

// Update replaces the mutable course fields (last write wins).
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("level", course.Level).
		Set("description", course.Description).
		Set("image_url", course.ImageURL).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// UpdateImage sets the course image URL
func (r *CourseRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	sql, args, err := r.sb.Update("courses").
		Set("image_url", imageURL).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course image query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course; owned lectures go with it via ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddLecture appends a new lecture to its owning course
func (r *CourseRepository) AddLecture(ctx context.Context, lecture *models.Lecture) error {
	sql, args, err := r.sb.Insert("lectures").
		Columns("course_id", "title", "date", "duration_minutes", "instructor_id").
		Values(lecture.CourseID, lecture.Title, lecture.Date, lecture.DurationMinutes, lecture.Instructor.NullableID()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add lecture query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&lecture.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", lecture.CourseID).Msg("Error executing add lecture query")
		return fmt.Errorf("error adding lecture: %w", err)
	}

	return nil
}

// GetLectureInCourse resolves a lecture by id within the given course
func (r *CourseRepository) GetLectureInCourse(ctx context.Context, lectureID, courseID int64) (*models.Lecture, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "date", "duration_minutes", "instructor_id").
		From("lectures").
		Where(squirrel.Eq{"id": lectureID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lecture query: %w", err)
	}

	lecture, err := scanLecture(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error getting lecture: %w", err)
	}

	return lecture, nil
}

// AssignInstructor sets (or clears) the instructor reference on a lecture
func (r *CourseRepository) AssignInstructor(ctx context.Context, lectureID int64, assignment models.InstructorAssignment) error {
	sql, args, err := r.sb.Update("lectures").
		Set("instructor_id", assignment.NullableID()).
		Where(squirrel.Eq{"id": lectureID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign instructor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInstructorNotFound
		}
		return fmt.Errorf("error assigning instructor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLectureNotFound
	}

	return nil
}

// WithInstructorLock serializes fn against other assignment attempts for the
// same instructor using a transaction-scoped advisory lock.
func (r *CourseRepository) WithInstructorLock(ctx context.Context, instructorID int64, fn func(ctx context.Context) error) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", int32(assignmentLockClass), int32(instructorID)); err != nil {
			return fmt.Errorf("failed to acquire assignment lock: %w", err)
		}
		return fn(ctx)
	})
}
