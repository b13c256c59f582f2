package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devkale/coursehub/internal/app/models/dto"
	"github.com/devkale/coursehub/internal/app/services"
	"github.com/devkale/coursehub/internal/middleware"
	"github.com/devkale/coursehub/internal/pkg/apperrors"
)

// UserController handles the instructor directory and profile updates.
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetInstructors godoc
// @Summary List all instructors
// @Description Returns every instructor account, ordered by name
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Router /users/instructors [get]
func (c *UserController) GetInstructors(ctx *gin.Context) {
	instructors, err := c.userService.GetInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructors))
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile data"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// UploadAvatar godoc
// @Summary Upload the authenticated user's avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Router /users/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Missing avatar file"))
		return
	}

	user, err := c.userService.UpdateAvatar(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}
