package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
)

// CommentController handles the comment thread endpoints
type CommentController struct {
	comments services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(comments services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// ListComments godoc
// @Summary List the comments of an issue
// @Tags comments
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id}/comments [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	issueID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	comments, err := ctrl.comments.ListComments(c.Request.Context(), actor, issueID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CommentsFromModels(comments), ""))
}

// AddComment godoc
// @Summary Comment on an issue
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id}/comments [post]
func (ctrl *CommentController) AddComment(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	issueID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, err := ctrl.comments.AddComment(c.Request.Context(), actor, issueID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CommentFromModel(comment), "Comment added successfully"))
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Replaces a comment's content. Only the author or an admin may edit.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "New content"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /comments/{id} [put]
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, err := ctrl.comments.UpdateComment(c.Request.Context(), actor, commentID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CommentFromModel(comment), "Comment updated successfully"))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Removes a comment. Only the author or an admin may delete.
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.comments.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Comment deleted successfully"))
}
