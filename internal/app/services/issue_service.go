package services

import (
	"context"
	"errors"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/logger"
)

// defaultInfoRequestMessage is posted when a lecturer requests more
// information without writing their own message.
const defaultInfoRequestMessage = "More information is needed to resolve this issue."

// issueRepository is the issue repository surface the issue service needs
type issueRepository interface {
	CreateIssue(ctx context.Context, issue *models.Issue) (int64, error)
	GetIssueByID(ctx context.Context, id int64) (*models.Issue, error)
	ListIssues(ctx context.Context, actor *models.User, page, size int) ([]models.Issue, int, error)
	UpdateIssueFields(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteIssue(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, actor *models.User) (int, map[models.IssueStatus]int, error)
	CountByCreatorCollege(ctx context.Context) (map[string]int, error)
}

// issueUserRepository resolves assignee references
type issueUserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// issueCommentRepository persists the info-request comment together with
// the issue's status flip
type issueCommentRepository interface {
	CreateWithIssueProgress(ctx context.Context, comment *models.Comment, progressTo *models.IssueStatus) (int64, error)
}

// IssueService handles the issue lifecycle
type IssueService interface {
	CreateIssue(ctx context.Context, actor *models.User, req dto.CreateIssueRequest) (*models.Issue, error)
	GetIssue(ctx context.Context, actor *models.User, id int64) (*models.Issue, error)
	ListIssues(ctx context.Context, actor *models.User, page, size int) ([]models.Issue, int, error)
	UpdateIssue(ctx context.Context, actor *models.User, id int64, req dto.UpdateIssueRequest) (*models.Issue, error)
	DeleteIssue(ctx context.Context, actor *models.User, id int64) error
	AssignIssue(ctx context.Context, actor *models.User, id int64, req dto.AssignIssueRequest) (*models.Issue, error)
	RequestMoreInfo(ctx context.Context, actor *models.User, id int64, req dto.RequestInfoRequest) (*models.Comment, *models.Issue, error)
	Stats(ctx context.Context, actor *models.User) (*dto.IssueStatsResponse, error)
}

type issueService struct {
	issues     issueRepository
	users      issueUserRepository
	comments   issueCommentRepository
	authz      *appauth.AuthorizationService
	dispatcher Dispatcher
}

// NewIssueService creates a new IssueService
func NewIssueService(issues issueRepository, users issueUserRepository, comments issueCommentRepository,
	authz *appauth.AuthorizationService, dispatcher Dispatcher) IssueService {
	return &issueService{
		issues:     issues,
		users:      users,
		comments:   comments,
		authz:      authz,
		dispatcher: dispatcher,
	}
}

// CreateIssue stores a new issue in PENDING status. When the request
// names no college, the creator's own college is used.
func (s *issueService) CreateIssue(ctx context.Context, actor *models.User, req dto.CreateIssueRequest) (*models.Issue, error) {
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.IssuePriority(*req.Priority)
		if !priority.Valid() {
			return nil, apperrors.NewValidationError("Invalid priority")
		}
	}

	college := req.College
	if college == nil {
		college = actor.College
	}

	var assignee *models.User
	if req.AssignedTo != nil {
		user, err := s.users.GetUserByID(ctx, *req.AssignedTo)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.NewValidationError("Assigned user not found")
			}
			return nil, err
		}
		assignee = user
	}

	issue := &models.Issue{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
		Priority:    priority,
		CourseUnit:  req.CourseUnit,
		College:     college,
		CreatedByID: actor.ID,
	}
	if assignee != nil {
		issue.AssignedToID = &assignee.ID
	}

	if _, err := s.issues.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}
	issue.CreatedBy = actor
	issue.AssignedTo = assignee

	s.dispatcher.Dispatch(ctx, events.IssueCreated{
		Issue:    issue,
		Creator:  actor,
		Assignee: assignee,
	})

	return issue, nil
}

// GetIssue retrieves an issue the actor is allowed to see. Issues outside
// the actor's visibility read as not found.
func (s *issueService) GetIssue(ctx context.Context, actor *models.User, id int64) (*models.Issue, error) {
	issue, err := s.issues.GetIssueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appauth.VisibleTo(actor, issue) {
		return nil, apperrors.ErrIssueNotFound
	}
	return issue, nil
}

// ListIssues retrieves the issues visible to the actor with pagination
func (s *issueService) ListIssues(ctx context.Context, actor *models.User, page, size int) ([]models.Issue, int, error) {
	return s.issues.ListIssues(ctx, actor, page, size)
}

// UpdateIssue applies field-level changes. A status change and an
// assignment change in the same request emit the status event first.
func (s *issueService) UpdateIssue(ctx context.Context, actor *models.User, id int64, req dto.UpdateIssueRequest) (*models.Issue, error) {
	issue, err := s.GetIssue(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateIssueModify(actor, issue); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CourseUnit != nil {
		fields["course_unit"] = *req.CourseUnit
	}
	if req.College != nil {
		fields["college"] = *req.College
	}
	if req.Priority != nil {
		priority := models.IssuePriority(*req.Priority)
		if !priority.Valid() {
			return nil, apperrors.NewValidationError("Invalid priority")
		}
		fields["priority"] = priority
	}

	oldStatus := issue.Status
	statusChanged := false
	if req.Status != nil {
		newStatus := models.IssueStatus(*req.Status)
		if !newStatus.Valid() {
			return nil, apperrors.NewValidationError("Invalid status")
		}
		if newStatus != oldStatus {
			statusChanged = true
		}
		fields["status"] = newStatus
	}

	var newAssignee *models.User
	assignmentChanged := false
	if req.AssignedTo.Set {
		if req.AssignedTo.Value != nil {
			user, err := s.users.GetUserByID(ctx, *req.AssignedTo.Value)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return nil, apperrors.NewValidationError("Assigned user not found")
				}
				return nil, err
			}
			newAssignee = user
		}
		assignmentChanged = !sameAssignee(issue.AssignedToID, req.AssignedTo.Value)
		fields["assigned_to"] = req.AssignedTo.Value
	}

	if err := s.issues.UpdateIssueFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.issues.GetIssueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.dispatcher.Dispatch(ctx, events.StatusChanged{
			Issue:     updated,
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		})
	}
	if assignmentChanged {
		s.dispatcher.Dispatch(ctx, events.AssignmentChanged{
			Issue:            updated,
			OldAssigneeID:    issue.AssignedToID,
			NewAssignee:      newAssignee,
			Actor:            actor,
			FromAssignAction: false,
		})
	}

	return updated, nil
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// DeleteIssue removes an issue after an owner-or-elevated check
func (s *issueService) DeleteIssue(ctx context.Context, actor *models.User, id int64) error {
	issue, err := s.GetIssue(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateIssueModify(actor, issue); err != nil {
		return err
	}
	return s.issues.DeleteIssue(ctx, id)
}

// AssignIssue sets the assignee through the explicit assign action. The
// issue must be visible to the actor and the target must hold a staff
// role.
func (s *issueService) AssignIssue(ctx context.Context, actor *models.User, id int64, req dto.AssignIssueRequest) (*models.Issue, error) {
	if req.UserID == nil {
		return nil, apperrors.NewValidationError("User ID is required")
	}

	issue, err := s.GetIssue(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	assignee, err := s.users.GetUserByID(ctx, *req.UserID)
	if err != nil {
		return nil, err
	}
	if !assignee.RoleType.IsStaff() {
		return nil, apperrors.NewValidationError("Can only assign to staff members")
	}

	oldAssigneeID := issue.AssignedToID
	if err := s.issues.UpdateIssueFields(ctx, id, map[string]interface{}{"assigned_to": assignee.ID}); err != nil {
		return nil, err
	}

	updated, err := s.issues.GetIssueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("issueID", id).Int64("assigneeID", assignee.ID).Int64("actorID", actor.ID).Msg("Issue assigned")

	s.dispatcher.Dispatch(ctx, events.AssignmentChanged{
		Issue:            updated,
		OldAssigneeID:    oldAssigneeID,
		NewAssignee:      assignee,
		Actor:            actor,
		FromAssignAction: true,
	})

	return updated, nil
}

// RequestMoreInfo posts an info-request comment on behalf of the
// assigned lecturer. A PENDING issue is moved to IN_PROGRESS in the same
// transaction; other statuses are left as they are.
func (s *issueService) RequestMoreInfo(ctx context.Context, actor *models.User, id int64, req dto.RequestInfoRequest) (*models.Comment, *models.Issue, error) {
	issue, err := s.issues.GetIssueByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authz.ValidateRequestInfo(actor, issue); err != nil {
		return nil, nil, err
	}

	message := req.Message
	if message == "" {
		message = defaultInfoRequestMessage
	}

	var progressTo *models.IssueStatus
	if issue.Status == models.StatusPending {
		inProgress := models.StatusInProgress
		progressTo = &inProgress
	}

	comment := &models.Comment{
		IssueID:     issue.ID,
		Content:     message,
		CreatedByID: actor.ID,
	}
	if _, err := s.comments.CreateWithIssueProgress(ctx, comment, progressTo); err != nil {
		return nil, nil, err
	}
	comment.CreatedBy = actor
	if progressTo != nil {
		issue.Status = *progressTo
	}

	s.dispatcher.Dispatch(ctx, events.CommentAdded{
		Issue:       issue,
		Comment:     comment,
		InfoRequest: true,
	})

	return comment, issue, nil
}

// Stats aggregates the issues visible to the actor. Academic registrars
// additionally get the per-college breakdown over all issues.
func (s *issueService) Stats(ctx context.Context, actor *models.User) (*dto.IssueStatsResponse, error) {
	total, byStatus, err := s.issues.CountByStatus(ctx, actor)
	if err != nil {
		return nil, err
	}

	resp := &dto.IssueStatsResponse{
		Total:    total,
		ByStatus: make(map[string]int, len(byStatus)),
	}
	for status, count := range byStatus {
		resp.ByStatus[string(status)] = count
	}

	if actor.RoleType == models.RoleAcademicRegistrar {
		byCollege, err := s.issues.CountByCreatorCollege(ctx)
		if err != nil {
			return nil, err
		}
		resp.ByCollege = byCollege
	}

	return resp, nil
}
