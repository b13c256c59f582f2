package dto

import (
	"time"

	"github.com/devkale/coursehub/internal/app/models"
)

// CreateCourseRequest represents the data needed to create a course
type CreateCourseRequest struct {
	Name        string             `json:"name" binding:"required"`
	Level       models.CourseLevel `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
	Description string             `json:"description"`
	ImageURL    string             `json:"imageUrl"`
}

// UpdateCourseRequest represents a partial course update. Nil fields are
// left unchanged.
type UpdateCourseRequest struct {
	Name        *string             `json:"name,omitempty"`
	Level       *models.CourseLevel `json:"level,omitempty"`
	Description *string             `json:"description,omitempty"`
	ImageURL    *string             `json:"imageUrl,omitempty"`
}

// AddLectureRequest represents the data needed to add a lecture batch to a
// course. New lectures always start unassigned.
type AddLectureRequest struct {
	Title    string    `json:"title" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"required,min=1"`
}

// AssignLectureRequest represents an instructor-to-lecture assignment
type AssignLectureRequest struct {
	LectureID    int64 `json:"lectureId" binding:"required,min=1"`
	CourseID     int64 `json:"courseId" binding:"required,min=1"`
	InstructorID int64 `json:"instructorId" binding:"required,min=1"`
}
