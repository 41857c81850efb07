package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/app/services"
	"github.com/makerere/aits/internal/middleware"
)

// ReferenceController serves the static lookup data
type ReferenceController struct {
	reference services.ReferenceService
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(reference services.ReferenceService) *ReferenceController {
	return &ReferenceController{reference: reference}
}

// ListColleges godoc
// @Summary List the known colleges
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CollegeListResponse}
// @Router /reference/colleges [get]
func (ctrl *ReferenceController) ListColleges(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(ctrl.reference.ListColleges(), ""))
}

// ListCourseUnits godoc
// @Summary List the known course units
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseUnitListResponse}
// @Router /reference/course-units [get]
func (ctrl *ReferenceController) ListCourseUnits(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(ctrl.reference.ListCourseUnits(), ""))
}

// RoleFields godoc
// @Summary Describe the registration fields a role requires
// @Tags reference
// @Produce json
// @Param role path string true "Role type" Enums(STUDENT, LECTURER, ACADEMIC_REGISTRAR, ADMIN)
// @Success 200 {object} dto.APIResponse{data=dto.RoleFieldsResponse}
// @Failure 400 {object} dto.APIResponse
// @Router /reference/role-fields/{role} [get]
func (ctrl *ReferenceController) RoleFields(c *gin.Context) {
	resp, err := ctrl.reference.RoleFields(c.Param("role"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
