package services

import (
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// Known college labels and course unit codes offered to registration and
// issue forms.
var (
	colleges = []string{
		"COCIS",
		"CEDAT",
		"CHUSS",
		"CONAS",
		"COBAMS",
		"CHS",
	}

	courseUnits = []string{
		"CSC 1200",
		"CSC 2103",
		"BIT 2201",
		"EMT 1101",
		"STA 1510",
	}
)

// ReferenceService serves the static lookup data the clients render
// forms from
type ReferenceService interface {
	ListColleges() dto.CollegeListResponse
	ListCourseUnits() dto.CourseUnitListResponse
	RoleFields(role string) (*dto.RoleFieldsResponse, error)
}

type referenceService struct{}

// NewReferenceService creates a new ReferenceService
func NewReferenceService() ReferenceService {
	return &referenceService{}
}

// ListColleges returns the known college labels
func (s *referenceService) ListColleges() dto.CollegeListResponse {
	return dto.CollegeListResponse{Colleges: colleges}
}

// ListCourseUnits returns the known course unit codes
func (s *referenceService) ListCourseUnits() dto.CourseUnitListResponse {
	return dto.CourseUnitListResponse{CourseUnits: courseUnits}
}

// RoleFields describes the registration fields a role requires, matching
// the conditional validation applied on registration
func (s *referenceService) RoleFields(role string) (*dto.RoleFieldsResponse, error) {
	r := models.RoleType(role)
	if !r.Valid() {
		return nil, apperrors.NewValidationError("Invalid role type")
	}

	resp := &dto.RoleFieldsResponse{Role: string(r)}
	switch r {
	case models.RoleStudent:
		resp.RequiredFields = []string{"college", "studentNumber"}
		resp.OptionalFields = []string{"phoneNumber"}
	case models.RoleAdmin:
		resp.RequiredFields = []string{}
		resp.OptionalFields = []string{"college", "phoneNumber"}
	default:
		resp.RequiredFields = []string{"college"}
		resp.OptionalFields = []string{"phoneNumber"}
	}

	return resp, nil
}
