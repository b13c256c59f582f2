package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Both admins and instructors live in the same directory; the role
// distinguishes them.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"instructor1@test.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Name      string    `json:"name" db:"name" example:"John Doe"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"INSTRUCTOR"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile" example:"+1234567890"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleType == RoleAdmin
}
