package dto

import (
	"time"

	"github.com/makerere/aits/internal/app/models"
)

// CreateCommentRequest is the payload for posting a comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest is the payload for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the public view of a comment
type CommentResponse struct {
	ID            int64     `json:"id" example:"1"`
	IssueID       int64     `json:"issue"`
	Content       string    `json:"content"`
	CreatedBy     int64     `json:"createdBy"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CommentFromModel maps a comment model to its response shape
func CommentFromModel(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		IssueID:   comment.IssueID,
		Content:   comment.Content,
		CreatedBy: comment.CreatedByID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.CreatedBy != nil {
		resp.CreatedByName = comment.CreatedBy.FullName()
	}
	return resp
}

// CommentsFromModels maps a comment slice to response shapes
func CommentsFromModels(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, CommentFromModel(&comments[i]))
	}
	return out
}
