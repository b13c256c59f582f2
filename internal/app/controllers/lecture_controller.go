package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/app/services"
	"github.com/devkale/coursehub/internal/middleware"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

// LectureController handles lecture creation, assignment and the flat
// cross-course lecture views.
type LectureController struct {
	courseService     *services.CourseService
	assignmentService *services.AssignmentService
	projection        *services.LectureProjection
}

// NewLectureController creates a new LectureController
func NewLectureController(
	courseService *services.CourseService,
	assignmentService *services.AssignmentService,
	projection *services.LectureProjection,
) *LectureController {
	return &LectureController{
		courseService:     courseService,
		assignmentService: assignmentService,
		projection:        projection,
	}
}

// AddLecture godoc
// @Summary Add a lecture to a course
// @Description Appends a new, unassigned lecture to the course. Admin only.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AddLectureRequest true "Lecture data"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/lectures [post]
func (c *LectureController) AddLecture(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AddLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.AddLecture(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// AssignInstructor godoc
// @Summary Assign an instructor to a lecture
// @Description Assigns the instructor unless they already teach another lecture on the same calendar day. Admin only.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignLectureRequest true "Assignment data"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /lectures/assign [put]
func (c *LectureController) AssignInstructor(ctx *gin.Context) {
	var req dto.AssignLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.assignmentService.AssignLecture(ctx.Request.Context(), req.LectureID, req.CourseID, req.InstructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// GetAllLectures godoc
// @Summary List all lectures across courses
// @Description Returns every lecture with its course name, sorted by date
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectedLecture}
// @Router /lectures [get]
func (c *LectureController) GetAllLectures(ctx *gin.Context) {
	lectures, err := c.projection.AllLectures(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lectures))
}

// GetUnassignedLectures godoc
// @Summary List lectures without an instructor
// @Description Optionally scoped to one course via the courseId query parameter. An unknown course yields an empty list.
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectedLecture}
// @Router /lectures/unassigned [get]
func (c *LectureController) GetUnassignedLectures(ctx *gin.Context) {
	var courseID *int64
	if raw := ctx.Query("courseId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid courseId parameter"))
			return
		}
		courseID = &id
	}

	lectures, err := c.projection.UnassignedLectures(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lectures))
}

// GetMyLectures godoc
// @Summary List the authenticated instructor's lectures
// @Description Returns the caller's assigned lectures across all courses, sorted by date
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectedLecture}
// @Router /lectures/my [get]
func (c *LectureController) GetMyLectures(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	lectures, err := c.projection.LecturesByInstructor(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lectures))
}
