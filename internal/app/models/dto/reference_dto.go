package dto

// CollegeListResponse lists the known college labels
type CollegeListResponse struct {
	Colleges []string `json:"colleges"`
}

// CourseUnitListResponse lists the known course unit codes
type CourseUnitListResponse struct {
	CourseUnits []string `json:"courseUnits"`
}

// RoleFieldsResponse describes which registration fields a role requires
type RoleFieldsResponse struct {
	Role           string   `json:"role" example:"STUDENT"`
	RequiredFields []string `json:"requiredFields"`
	OptionalFields []string `json:"optionalFields"`
}
