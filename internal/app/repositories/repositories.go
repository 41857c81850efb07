// Package repositories contains the PostgreSQL data access layer. Every
// repository builds its SQL with squirrel and speaks pgx directly.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories groups every repository behind a single constructor so the
// bootstrap can wire them in one step.
type Repositories struct {
	Users         *UserRepository
	Issues        *IssueRepository
	Comments      *CommentRepository
	Notifications *NotificationRepository
	Tokens        *TokenRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(pool),
		Issues:        NewIssueRepository(pool),
		Comments:      NewCommentRepository(pool),
		Notifications: NewNotificationRepository(pool),
		Tokens:        NewTokenRepository(pool),
	}
}
