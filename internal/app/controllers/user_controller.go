package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
)

// UserController handles profile and user directory endpoints
type UserController struct {
	users services.UserService
}

// NewUserController creates a new UserController
func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/me [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := ctrl.users.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserFromModel(user), ""))
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Applies the present fields. Email and role cannot be changed.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/me [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := ctrl.users.UpdateProfile(c.Request.Context(), actor.ID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserFromModel(user), "Profile updated successfully"))
}

// ListUsers godoc
// @Summary List users
// @Description Lists users for assignment pickers, optionally filtered by role
// @Tags users
// @Produce json
// @Param role query string false "Role filter" Enums(STUDENT, LECTURER, ACADEMIC_REGISTRAR, ADMIN)
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var roleFilter *string
	if role := c.Query("role"); role != "" {
		roleFilter = &role
	}

	users, err := ctrl.users.ListUsers(c.Request.Context(), actor, roleFilter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UsersFromModels(users), ""))
}
