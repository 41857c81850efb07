package dto

import (
	"encoding/json"
	"time"

	"github.com/makerere/aits/internal/app/models"
)

// OptionalID is a tri-state ID field for PATCH-style updates: absent
// (Set=false), explicit null (Set=true, Value=nil) and a value. An
// explicit null on assignedTo means "unassign".
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON records that the field was present, keeping nil for an
// explicit null
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// CreateIssueRequest is the payload for raising an issue. The creator's
// college is used when none is given.
type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required" example:"Missing marks for CSC 1200"`
	Description string  `json:"description" binding:"required"`
	Priority    *string `json:"priority,omitempty" example:"MEDIUM"`
	CourseUnit  string  `json:"courseUnit" binding:"required" example:"CSC 1200"`
	College     *string `json:"college,omitempty" example:"COCIS"`
	AssignedTo  *int64  `json:"assignedTo,omitempty"`
}

// UpdateIssueRequest is the payload for field-level issue updates. Every
// field is optional; only present fields are written.
type UpdateIssueRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" example:"RESOLVED"`
	Priority    *string    `json:"priority,omitempty" example:"HIGH"`
	CourseUnit  *string    `json:"courseUnit,omitempty"`
	College     *string    `json:"college,omitempty"`
	AssignedTo  OptionalID `json:"assignedTo,omitempty"`
}

// AssignIssueRequest is the payload for the explicit assign action
type AssignIssueRequest struct {
	UserID *int64 `json:"user_id"`
}

// RequestInfoRequest is the payload for the request-more-info action.
// An empty message falls back to a standard prompt.
type RequestInfoRequest struct {
	Message string `json:"message,omitempty"`
}

// IssueResponse is the public view of an issue
type IssueResponse struct {
	ID             int64     `json:"id" example:"1"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status" example:"PENDING"`
	Priority       string    `json:"priority" example:"MEDIUM"`
	CourseUnit     string    `json:"courseUnit"`
	College        *string   `json:"college,omitempty"`
	CreatedBy      int64     `json:"createdBy"`
	CreatedByName  string    `json:"createdByName,omitempty"`
	AssignedTo     *int64    `json:"assignedTo,omitempty"`
	AssignedToName *string   `json:"assignedToName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IssueFromModel maps an issue model to its response shape
func IssueFromModel(issue *models.Issue) IssueResponse {
	resp := IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		CourseUnit:  issue.CourseUnit,
		College:     issue.College,
		CreatedBy:   issue.CreatedByID,
		AssignedTo:  issue.AssignedToID,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
	if issue.CreatedBy != nil {
		resp.CreatedByName = issue.CreatedBy.FullName()
	}
	if issue.AssignedTo != nil {
		name := issue.AssignedTo.FullName()
		resp.AssignedToName = &name
	}
	return resp
}

// IssuesFromModels maps an issue slice to response shapes
func IssuesFromModels(issues []models.Issue) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		out = append(out, IssueFromModel(&issues[i]))
	}
	return out
}

// PaginationInfo describes the page a list response covers
type PaginationInfo struct {
	Page       int `json:"page" example:"1"`
	Size       int `json:"size" example:"10"`
	TotalItems int `json:"totalItems" example:"42"`
	TotalPages int `json:"totalPages" example:"5"`
}

// NewPaginationInfo computes the page count from the totals
func NewPaginationInfo(page, size, totalItems int) PaginationInfo {
	totalPages := 0
	if size > 0 {
		totalPages = (totalItems + size - 1) / size
	}
	return PaginationInfo{
		Page:       page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// IssueListResponse is the paginated issue listing
type IssueListResponse struct {
	Issues     []IssueResponse `json:"issues"`
	Pagination PaginationInfo  `json:"pagination"`
}

// RequestInfoResponse is returned by the request-more-info action: the
// comment that was posted and the issue in its possibly progressed state
type RequestInfoResponse struct {
	Comment CommentResponse `json:"comment"`
	Issue   IssueResponse   `json:"issue"`
}
