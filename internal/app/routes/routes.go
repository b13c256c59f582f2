// Package routes maps the HTTP surface onto the controllers.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/devkale/coursehub/internal/app/controllers"
	"github.com/devkale/coursehub/internal/app/models"
	"github.com/devkale/coursehub/internal/middleware"
	"github.com/devkale/coursehub/internal/pkg/auth"
)

// RegisterRoutes wires every endpoint onto the engine. Mutating course and
// lecture endpoints require the ADMIN role; reads require any authenticated
// user.
func RegisterRoutes(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	jwtService *auth.JWTService,
	storagePath string,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))
	router.Static("/uploads", storagePath)

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrls.AuthController.Register)
		authGroup.POST("/login", ctrls.AuthController.Login)
		authGroup.GET("/me", middleware.JWTAuth(jwtService), ctrls.AuthController.Me)
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))

	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrls.CourseController.GetCourses)
		courses.GET("/:id", ctrls.CourseController.GetCourse)
		courses.GET("/:id/instructors", ctrls.CourseController.GetCourseInstructors)
		courses.POST("", adminOnly, ctrls.CourseController.CreateCourse)
		courses.PUT("/:id", adminOnly, ctrls.CourseController.UpdateCourse)
		courses.DELETE("/:id", adminOnly, ctrls.CourseController.DeleteCourse)
		courses.POST("/:id/image", adminOnly, ctrls.CourseController.UploadCourseImage)
		courses.POST("/:id/lectures", adminOnly, ctrls.LectureController.AddLecture)
	}

	lectures := authenticated.Group("/lectures")
	{
		lectures.GET("", ctrls.LectureController.GetAllLectures)
		lectures.GET("/unassigned", ctrls.LectureController.GetUnassignedLectures)
		lectures.GET("/my", ctrls.LectureController.GetMyLectures)
		lectures.PUT("/assign", adminOnly, ctrls.LectureController.AssignInstructor)
	}

	users := authenticated.Group("/users")
	{
		users.GET("/instructors", ctrls.UserController.GetInstructors)
		users.PUT("/profile", ctrls.UserController.UpdateProfile)
		users.POST("/profile/avatar", ctrls.UserController.UploadAvatar)
	}
}
