package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
)

// DashboardController serves the role-shaped landing payload
type DashboardController struct {
	dashboard services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboard services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// GetDashboard godoc
// @Summary Get the caller's dashboard
// @Description Aggregates visible issues, recent activity and the unread notification count. Academic registrars also get the unassigned queue and a per-college breakdown.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	actor, err := currentUser(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ctrl.dashboard.Dashboard(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
