package services

import (
	"context"
	"sort"
	"sync"

	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
)

// recordingDispatcher captures the events a service emits
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

// fakeUserRepo serves users from a map
type fakeUserRepo struct {
	users map[int64]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, role *models.RoleType) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if role == nil || user.RoleType == *role {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListUsersByRole(ctx context.Context, role models.RoleType) ([]models.User, error) {
	return f.ListUsers(ctx, &role)
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, fields map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for key, value := range fields {
		switch key {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "phone_number":
			user.PhoneNumber = value.(string)
		case "college":
			college := value.(string)
			user.College = &college
		}
	}
	return nil
}

// fakeIssueRepo keeps issues in memory and records every field map an
// update applied
type fakeIssueRepo struct {
	nextID        int64
	issues        map[int64]*models.Issue
	updatedFields []map[string]interface{}

	totalByStatus map[models.IssueStatus]int
	byCollege     map[string]int
}

func newFakeIssueRepo(issues ...*models.Issue) *fakeIssueRepo {
	repo := &fakeIssueRepo{
		nextID: 1,
		issues: make(map[int64]*models.Issue),
	}
	for _, issue := range issues {
		repo.issues[issue.ID] = issue
		if issue.ID >= repo.nextID {
			repo.nextID = issue.ID + 1
		}
	}
	return repo
}

func copyIssue(issue *models.Issue) *models.Issue {
	clone := *issue
	if issue.AssignedToID != nil {
		id := *issue.AssignedToID
		clone.AssignedToID = &id
	}
	return &clone
}

func (f *fakeIssueRepo) CreateIssue(_ context.Context, issue *models.Issue) (int64, error) {
	issue.ID = f.nextID
	f.nextID++
	f.issues[issue.ID] = copyIssue(issue)
	return issue.ID, nil
}

func (f *fakeIssueRepo) GetIssueByID(_ context.Context, id int64) (*models.Issue, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}
	return copyIssue(issue), nil
}

func (f *fakeIssueRepo) ListIssues(_ context.Context, actor *models.User, _, _ int) ([]models.Issue, int, error) {
	var out []models.Issue
	for _, issue := range f.issues {
		out = append(out, *copyIssue(issue))
	}
	return out, len(out), nil
}

func (f *fakeIssueRepo) UpdateIssueFields(_ context.Context, id int64, fields map[string]interface{}) error {
	issue, ok := f.issues[id]
	if !ok {
		return apperrors.ErrIssueNotFound
	}
	f.updatedFields = append(f.updatedFields, fields)

	for key, value := range fields {
		switch key {
		case "title":
			issue.Title = value.(string)
		case "description":
			issue.Description = value.(string)
		case "status":
			issue.Status = value.(models.IssueStatus)
		case "priority":
			issue.Priority = value.(models.IssuePriority)
		case "course_unit":
			issue.CourseUnit = value.(string)
		case "college":
			college := value.(string)
			issue.College = &college
		case "assigned_to":
			switch v := value.(type) {
			case int64:
				id := v
				issue.AssignedToID = &id
			case *int64:
				issue.AssignedToID = v
			}
		}
	}
	return nil
}

func (f *fakeIssueRepo) DeleteIssue(_ context.Context, id int64) error {
	if _, ok := f.issues[id]; !ok {
		return apperrors.ErrIssueNotFound
	}
	delete(f.issues, id)
	return nil
}

func (f *fakeIssueRepo) CountByStatus(_ context.Context, _ *models.User) (int, map[models.IssueStatus]int, error) {
	total := 0
	for _, count := range f.totalByStatus {
		total += count
	}
	return total, f.totalByStatus, nil
}

func (f *fakeIssueRepo) CountByCreatorCollege(_ context.Context) (map[string]int, error) {
	return f.byCollege, nil
}

func (f *fakeIssueRepo) ListRecentIssues(_ context.Context, _ *models.User, _ int) ([]models.Issue, error) {
	return nil, nil
}

func (f *fakeIssueRepo) ListUnassignedRecent(_ context.Context, _ int) ([]models.Issue, error) {
	return nil, nil
}

// fakeCommentRepo keeps comments in memory; when an info request asks for
// a status flip it applies it through the linked issue repo
type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*models.Comment
	issues   *fakeIssueRepo

	progressedTo []*models.IssueStatus
}

func newFakeCommentRepo(issues *fakeIssueRepo) *fakeCommentRepo {
	return &fakeCommentRepo{
		nextID:   1,
		comments: make(map[int64]*models.Comment),
		issues:   issues,
	}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) (int64, error) {
	comment.ID = f.nextID
	f.nextID++
	clone := *comment
	f.comments[comment.ID] = &clone
	return comment.ID, nil
}

func (f *fakeCommentRepo) CreateWithIssueProgress(ctx context.Context, comment *models.Comment, progressTo *models.IssueStatus) (int64, error) {
	f.progressedTo = append(f.progressedTo, progressTo)
	if progressTo != nil {
		if issue, ok := f.issues.issues[comment.IssueID]; ok {
			issue.Status = *progressTo
		}
	}
	return f.CreateComment(ctx, comment)
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	clone := *comment
	return &clone, nil
}

func (f *fakeCommentRepo) ListCommentsByIssue(_ context.Context, issueID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.IssueID == issueID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) UpdateCommentContent(_ context.Context, id int64, content string) error {
	comment, ok := f.comments[id]
	if !ok {
		return apperrors.ErrCommentNotFound
	}
	comment.Content = content
	return nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}
