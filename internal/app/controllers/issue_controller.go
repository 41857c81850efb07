package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
	"github.com/makerere/aits/internal/pkg/helpers"
)

// IssueController handles the issue lifecycle endpoints
type IssueController struct {
	issues services.IssueService
}

// NewIssueController creates a new IssueController
func NewIssueController(issues services.IssueService) *IssueController {
	return &IssueController{issues: issues}
}

// CreateIssue godoc
// @Summary Raise a new issue
// @Description Creates an issue in PENDING status. When no college is given the creator's college is used.
// @Tags issues
// @Accept json
// @Produce json
// @Param request body dto.CreateIssueRequest true "Issue details"
// @Success 201 {object} dto.APIResponse{data=dto.IssueResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues [post]
func (ctrl *IssueController) CreateIssue(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	issue, err := ctrl.issues.CreateIssue(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IssueFromModel(issue), "Issue created successfully"))
}

// ListIssues godoc
// @Summary List visible issues
// @Description Lists the issues the caller may see, newest first. Admins and registrars see all issues, lecturers see assigned and own issues, students see their own.
// @Tags issues
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.IssueListResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues [get]
func (ctrl *IssueController) ListIssues(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)
	issues, total, err := ctrl.issues.ListIssues(c.Request.Context(), actor, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp := dto.IssueListResponse{
		Issues:     dto.IssuesFromModels(issues),
		Pagination: dto.NewPaginationInfo(page, size, total),
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetIssue godoc
// @Summary Get an issue
// @Description Retrieves one issue. Issues outside the caller's visibility read as not found.
// @Tags issues
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} dto.APIResponse{data=dto.IssueResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id} [get]
func (ctrl *IssueController) GetIssue(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	issue, err := ctrl.issues.GetIssue(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IssueFromModel(issue), ""))
}

// UpdateIssue godoc
// @Summary Update an issue
// @Description Applies field-level changes. Only the creator, an admin or an academic registrar may update. Sending assignedTo as null unassigns the issue.
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body dto.UpdateIssueRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.IssueResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id} [patch]
func (ctrl *IssueController) UpdateIssue(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	issue, err := ctrl.issues.UpdateIssue(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IssueFromModel(issue), "Issue updated successfully"))
}

// DeleteIssue godoc
// @Summary Delete an issue
// @Description Removes an issue and its comments. Only the creator, an admin or an academic registrar may delete.
// @Tags issues
// @Produce json
// @Param id path int true "Issue ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id} [delete]
func (ctrl *IssueController) DeleteIssue(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.issues.DeleteIssue(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Issue deleted successfully"))
}

// AssignIssue godoc
// @Summary Assign an issue to a staff member
// @Description Sets the assignee. The target must hold a staff role (lecturer, academic registrar or admin).
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body dto.AssignIssueRequest true "Assignee"
// @Success 200 {object} dto.APIResponse{data=dto.IssueResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id}/assign [post]
func (ctrl *IssueController) AssignIssue(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.AssignIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	issue, err := ctrl.issues.AssignIssue(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.IssueFromModel(issue), "Issue assigned successfully"))
}

// RequestMoreInfo godoc
// @Summary Request more information on an issue
// @Description Posts an info-request comment as the assigned lecturer. A PENDING issue moves to IN_PROGRESS.
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID"
// @Param request body dto.RequestInfoRequest false "Optional message"
// @Success 201 {object} dto.APIResponse{data=dto.RequestInfoResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/{id}/request-info [post]
func (ctrl *IssueController) RequestMoreInfo(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.RequestInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, issue, err := ctrl.issues.RequestMoreInfo(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp := dto.RequestInfoResponse{
		Comment: dto.CommentFromModel(comment),
		Issue:   dto.IssueFromModel(issue),
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Information requested"))
}

// GetStats godoc
// @Summary Get issue statistics
// @Description Aggregates the issues visible to the caller by status. Academic registrars also get a per-college breakdown.
// @Tags issues
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.IssueStatsResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /issues/stats [get]
func (ctrl *IssueController) GetStats(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	stats, err := ctrl.issues.Stats(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
