// Package services contains the business logic layer. Services depend on the
// repository interfaces, never on the database directly, and return domain
// models or apperrors values for the controllers to translate.
package services

import (
	"github.com/devkale/coursehub/internal/app/repositories"
	"github.com/devkale/coursehub/internal/pkg/auth"
	"github.com/devkale/coursehub/internal/pkg/filestorage"
)

// Services bundles every service for dependency injection.
type Services struct {
	AuthService       *AuthService
	CourseService     *CourseService
	AssignmentService *AssignmentService
	LectureProjection *LectureProjection
	UserService       *UserService
}

// NewServices wires all services against the given repositories.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
) *Services {
	projection := NewLectureProjection(repos.CourseRepository, repos.UserRepository)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, jwtService),
		CourseService:     NewCourseService(repos.CourseRepository, fileStorage),
		AssignmentService: NewAssignmentService(repos.CourseRepository, repos.UserRepository, projection),
		LectureProjection: projection,
		UserService:       NewUserService(repos.UserRepository, fileStorage),
	}
}
