// Package services implements the business rules on top of the
// repositories. Each service declares the narrow repository surface it
// consumes so tests can substitute fakes without a database.
package services

import (
	"context"

	appauth "github.com/makerere/aits/internal/app/auth"
	"github.com/makerere/aits/internal/app/events"
	"github.com/makerere/aits/internal/app/repositories"
	"github.com/makerere/aits/internal/pkg/auth"
)

// Dispatcher consumes the mutation events the services emit. The
// notification fanout engine is the production implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Event)
}

// Services groups every service behind a single constructor
type Services struct {
	Auth          AuthService
	Users         UserService
	Issues        IssueService
	Comments      CommentService
	Notifications NotificationService
	Dashboard     DashboardService
	Reference     ReferenceService
}

// NewServices wires the services over the repositories, the
// authorization rules and the event dispatcher
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, dispatcher Dispatcher) *Services {
	authz := appauth.NewAuthorizationService()

	return &Services{
		Auth:          NewAuthService(repos.Users, repos.Tokens, jwtService),
		Users:         NewUserService(repos.Users),
		Issues:        NewIssueService(repos.Issues, repos.Users, repos.Comments, authz, dispatcher),
		Comments:      NewCommentService(repos.Comments, repos.Issues, authz, dispatcher),
		Notifications: NewNotificationService(repos.Notifications, authz),
		Dashboard:     NewDashboardService(repos.Issues, repos.Notifications),
		Reference:     NewReferenceService(),
	}
}
