package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/db"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/logger"
)

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var commentSelectColumns = []string{
	"c.id", "c.issue_id", "c.content", "c.created_by", "c.created_at",
	"u.first_name", "u.last_name",
}

func (r *CommentRepository) commentQuery() squirrel.SelectBuilder {
	return r.sb.Select(commentSelectColumns...).
		From("comments c").
		Join("users u ON u.id = c.created_by")
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var comment models.Comment
	var authorFirst, authorLast string

	err := row.Scan(
		&comment.ID, &comment.IssueID, &comment.Content, &comment.CreatedByID,
		&comment.CreatedAt, &authorFirst, &authorLast,
	)
	if err != nil {
		return nil, err
	}

	comment.CreatedBy = &models.User{
		ID:        comment.CreatedByID,
		FirstName: authorFirst,
		LastName:  authorLast,
	}
	return &comment, nil
}

// CreateComment inserts a new comment and returns its ID
func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("comments").
		Columns("issue_id", "content", "created_by").
		Values(comment.IssueID, comment.Content, comment.CreatedByID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("issueID", comment.IssueID).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error inserting comment: %w", err)
	}

	return comment.ID, nil
}

// CreateWithIssueProgress inserts a comment and, when progressTo is set,
// moves its issue to that status in the same transaction. The info-request
// action uses this so the comment and the status flip land atomically.
func (r *CommentRepository) CreateWithIssueProgress(ctx context.Context, comment *models.Comment, progressTo *models.IssueStatus) (int64, error) {
	insertQuery, insertArgs, err := r.sb.Insert("comments").
		Columns("issue_id", "content", "created_by").
		Values(comment.IssueID, comment.Content, comment.CreatedByID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertQuery, insertArgs...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
			return fmt.Errorf("error inserting comment: %w", err)
		}

		if progressTo == nil {
			return nil
		}

		updateQuery, updateArgs, err := r.sb.Update("issues").
			Set("status", *progressTo).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": comment.IssueID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build issue progress query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("error progressing issue ID=%d: %w", comment.IssueID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrIssueNotFound
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("issueID", comment.IssueID).Msg("Error executing comment-with-progress transaction")
		return 0, err
	}

	return comment.ID, nil
}

// GetCommentByID retrieves a comment with its author relation
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	sqlQuery, args, err := r.commentQuery().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get comment SQL")
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment, err := scanComment(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error querying comment ID=%d: %w", id, err)
	}

	return comment, nil
}

// ListCommentsByIssue retrieves the comments of an issue, oldest first
func (r *CommentRepository) ListCommentsByIssue(ctx context.Context, issueID int64) ([]models.Comment, error) {
	sqlQuery, args, err := r.commentQuery().
		Where(squirrel.Eq{"c.issue_id": issueID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list comments SQL")
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("issueID", issueID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning comment row")
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// UpdateCommentContent replaces a comment's content
func (r *CommentRepository) UpdateCommentContent(ctx context.Context, id int64, content string) error {
	sqlQuery, args, err := r.sb.Update("comments").
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error building update comment SQL")
		return fmt.Errorf("failed to build update comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing update comment query")
		return fmt.Errorf("error updating comment ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}

// DeleteComment removes a comment
func (r *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error building delete comment SQL")
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing delete comment query")
		return fmt.Errorf("error deleting comment ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
