package services

import (
	"context"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// commentRepository is the comment repository surface the comment
// service needs
type commentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	ListCommentsByIssue(ctx context.Context, issueID int64) ([]models.Comment, error)
	UpdateCommentContent(ctx context.Context, id int64, content string) error
	DeleteComment(ctx context.Context, id int64) error
}

// commentIssueRepository resolves the issue a comment hangs off
type commentIssueRepository interface {
	GetIssueByID(ctx context.Context, id int64) (*models.Issue, error)
}

// CommentService handles the comment thread on an issue
type CommentService interface {
	AddComment(ctx context.Context, actor *models.User, issueID int64, req dto.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, actor *models.User, issueID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, actor *models.User, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor *models.User, commentID int64) error
}

type commentService struct {
	comments   commentRepository
	issues     commentIssueRepository
	authz      *appauth.AuthorizationService
	dispatcher Dispatcher
}

// NewCommentService creates a new CommentService
func NewCommentService(comments commentRepository, issues commentIssueRepository,
	authz *appauth.AuthorizationService, dispatcher Dispatcher) CommentService {
	return &commentService{
		comments:   comments,
		issues:     issues,
		authz:      authz,
		dispatcher: dispatcher,
	}
}

// visibleIssue resolves an issue and hides it from actors outside its
// visibility.
func (s *commentService) visibleIssue(ctx context.Context, actor *models.User, issueID int64) (*models.Issue, error) {
	issue, err := s.issues.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if !appauth.VisibleTo(actor, issue) {
		return nil, apperrors.ErrIssueNotFound
	}
	return issue, nil
}

// AddComment posts a comment on an issue the actor can see
func (s *commentService) AddComment(ctx context.Context, actor *models.User, issueID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	issue, err := s.visibleIssue(ctx, actor, issueID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		IssueID:     issue.ID,
		Content:     req.Content,
		CreatedByID: actor.ID,
	}
	if _, err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.CreatedBy = actor

	s.dispatcher.Dispatch(ctx, events.CommentAdded{
		Issue:   issue,
		Comment: comment,
	})

	return comment, nil
}

// ListComments retrieves the comment thread of a visible issue
func (s *commentService) ListComments(ctx context.Context, actor *models.User, issueID int64) ([]models.Comment, error) {
	if _, err := s.visibleIssue(ctx, actor, issueID); err != nil {
		return nil, err
	}
	return s.comments.ListCommentsByIssue(ctx, issueID)
}

// UpdateComment replaces a comment's content after an author-or-admin check
func (s *commentService) UpdateComment(ctx context.Context, actor *models.User, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateCommentModify(actor, comment); err != nil {
		return nil, err
	}

	if err := s.comments.UpdateCommentContent(ctx, commentID, req.Content); err != nil {
		return nil, err
	}

	return s.comments.GetCommentByID(ctx, commentID)
}

// DeleteComment removes a comment after an author-or-admin check
func (s *commentService) DeleteComment(ctx context.Context, actor *models.User, commentID int64) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateCommentModify(actor, comment); err != nil {
		return err
	}
	return s.comments.DeleteComment(ctx, commentID)
}
