package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var notificationColumns = []string{
	"id", "user_id", "notification_type", "issue_id", "message", "is_read", "created_at",
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID, &n.UserID, &n.Type, &n.IssueID, &n.Message, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNotification inserts a new notification and returns its ID
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("notifications").
		Columns("user_id", "notification_type", "issue_id", "message").
		Values(n.UserID, n.Type, n.IssueID, n.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", n.UserID).Msg("Error executing create notification query")
		return 0, fmt.Errorf("error inserting notification: %w", err)
	}

	return n.ID, nil
}

// GetNotificationByID retrieves a notification by ID
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	sqlQuery, args, err := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notification SQL")
		return nil, fmt.Errorf("failed to build get notification query: %w", err)
	}

	n, err := scanNotification(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error scanning notification row")
		return nil, fmt.Errorf("error querying notification ID=%d: %w", id, err)
	}

	return n, nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListNotificationsByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	sqlQuery, args, err := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	sqlQuery, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building unread count SQL")
		return 0, fmt.Errorf("failed to build unread count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sqlQuery, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting unread notifications")
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error building mark read SQL")
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing mark read query")
		return fmt.Errorf("error marking notification ID=%d read: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread notification of a user as read and
// returns how many rows changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	sqlQuery, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error building mark all read SQL")
		return 0, fmt.Errorf("failed to build mark all read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing mark all read query")
		return 0, fmt.Errorf("error marking notifications read for user ID=%d: %w", userID, err)
	}

	return int(cmdTag.RowsAffected()), nil
}
