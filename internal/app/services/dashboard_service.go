package services

import (
	"context"

	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/app/models/dto"
)

// recentIssuesShown caps the issue lists embedded in the dashboard
const recentIssuesShown = 5

// dashboardIssueRepository is the issue repository surface the dashboard
// needs
type dashboardIssueRepository interface {
	CountByStatus(ctx context.Context, actor *models.User) (int, map[models.IssueStatus]int, error)
	CountByCreatorCollege(ctx context.Context) (map[string]int, error)
	ListRecentIssues(ctx context.Context, actor *models.User, limit int) ([]models.Issue, error)
	ListUnassignedRecent(ctx context.Context, limit int) ([]models.Issue, error)
}

// dashboardNotificationRepository supplies the unread badge count
type dashboardNotificationRepository interface {
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// DashboardService builds the role-shaped landing payload
type DashboardService interface {
	Dashboard(ctx context.Context, actor *models.User) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	issues        dashboardIssueRepository
	notifications dashboardNotificationRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(issues dashboardIssueRepository, notifications dashboardNotificationRepository) DashboardService {
	return &dashboardService{
		issues:        issues,
		notifications: notifications,
	}
}

// Dashboard aggregates the actor's visible issues and unread
// notifications. Academic registrars additionally get the unassigned
// queue and the per-college breakdown.
func (s *dashboardService) Dashboard(ctx context.Context, actor *models.User) (*dto.DashboardResponse, error) {
	total, byStatus, err := s.issues.CountByStatus(ctx, actor)
	if err != nil {
		return nil, err
	}

	recent, err := s.issues.ListRecentIssues(ctx, actor, recentIssuesShown)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Role:                string(actor.RoleType),
		TotalIssues:         total,
		ByStatus:            make(map[string]int, len(byStatus)),
		RecentIssues:        dto.IssuesFromModels(recent),
		UnreadNotifications: unread,
	}
	for status, count := range byStatus {
		resp.ByStatus[string(status)] = count
	}

	if actor.RoleType == models.RoleAcademicRegistrar {
		unassigned, err := s.issues.ListUnassignedRecent(ctx, recentIssuesShown)
		if err != nil {
			return nil, err
		}
		resp.UnassignedIssues = dto.IssuesFromModels(unassigned)

		byCollege, err := s.issues.CountByCreatorCollege(ctx)
		if err != nil {
			return nil, err
		}
		resp.ByCollege = byCollege
	}

	return resp, nil
}
