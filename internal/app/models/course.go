package models

import (
	"time"
)

// Course represents a course together with the lecture batches it owns.
// Lectures are a composition: they are created through their course, deleted
// with it, and never move to another course.
type Course struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name" example:"Web Development Fundamentals"`
	Level       CourseLevel `json:"level" db:"level" example:"Beginner"`
	Description string      `json:"description" db:"description"`
	ImageURL    string      `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`

	// Owned lectures, ordered by date ascending.
	Lectures []Lecture `json:"lectures"`
}

// LectureByID returns the owned lecture with the given id, or nil.
func (c *Course) LectureByID(id int64) *Lecture {
	for i := range c.Lectures {
		if c.Lectures[i].ID == id {
			return &c.Lectures[i]
		}
	}
	return nil
}
