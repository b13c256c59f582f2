// Package controllers contains the HTTP handlers. Controllers bind and
// validate requests, call services, and translate errors through the
// middleware error handler.
package controllers

import (
	"github.com/devkale/coursehub/internal/app/services"
)

// Controllers bundles every controller for route registration.
type Controllers struct {
	AuthController    *AuthController
	CourseController  *CourseController
	LectureController *LectureController
	UserController    *UserController
}

// NewControllers wires all controllers against the given services.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:    NewAuthController(svcs.AuthService),
		CourseController:  NewCourseController(svcs.CourseService, svcs.LectureProjection),
		LectureController: NewLectureController(svcs.CourseService, svcs.AssignmentService, svcs.LectureProjection),
		UserController:    NewUserController(svcs.UserService),
	}
}
