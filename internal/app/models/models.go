package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleInstructor RoleType = "INSTRUCTOR"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleInstructor
}

// CourseLevel represents the difficulty level of a course
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// IsValid reports whether the level is one of the known levels.
func (l CourseLevel) IsValid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}
