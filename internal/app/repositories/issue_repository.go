package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/logger"
)

// IssueRepository handles issue database operations
type IssueRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// issueSelectColumns joins the creator and assignee rows so list and
// detail responses can carry names without extra queries.
var issueSelectColumns = []string{
	"i.id", "i.title", "i.description", "i.status", "i.priority",
	"i.course_unit", "i.college", "i.created_by", "i.assigned_to",
	"i.created_at", "i.updated_at",
	"cu.first_name", "cu.last_name",
	"au.id", "au.first_name", "au.last_name",
}

// visibilityScope returns the WHERE condition narrowing issue queries to
// the rows the actor may see, or nil when the actor sees everything. It
// must agree with auth.VisibleTo and is applied to listing, stats and
// dashboard queries alike.
func visibilityScope(actor *models.User) squirrel.Sqlizer {
	switch actor.RoleType {
	case models.RoleAdmin, models.RoleAcademicRegistrar:
		return nil
	case models.RoleLecturer:
		return squirrel.Or{
			squirrel.Eq{"i.assigned_to": actor.ID},
			squirrel.Eq{"i.created_by": actor.ID},
		}
	default:
		return squirrel.Eq{"i.created_by": actor.ID}
	}
}

func (r *IssueRepository) issueQuery() squirrel.SelectBuilder {
	return r.sb.Select(issueSelectColumns...).
		From("issues i").
		Join("users cu ON cu.id = i.created_by").
		LeftJoin("users au ON au.id = i.assigned_to")
}

func scanIssue(row pgx.Row) (*models.Issue, error) {
	var issue models.Issue
	var college sql.NullString
	var creatorFirst, creatorLast string
	var assigneeID sql.NullInt64
	var assigneeFirst, assigneeLast sql.NullString

	err := row.Scan(
		&issue.ID, &issue.Title, &issue.Description, &issue.Status, &issue.Priority,
		&issue.CourseUnit, &college, &issue.CreatedByID, &issue.AssignedToID,
		&issue.CreatedAt, &issue.UpdatedAt,
		&creatorFirst, &creatorLast,
		&assigneeID, &assigneeFirst, &assigneeLast,
	)
	if err != nil {
		return nil, err
	}

	if college.Valid {
		issue.College = &college.String
	}
	issue.CreatedBy = &models.User{
		ID:        issue.CreatedByID,
		FirstName: creatorFirst,
		LastName:  creatorLast,
	}
	if assigneeID.Valid {
		issue.AssignedTo = &models.User{
			ID:        assigneeID.Int64,
			FirstName: assigneeFirst.String,
			LastName:  assigneeLast.String,
		}
	}
	return &issue, nil
}

// CreateIssue inserts a new issue and returns its ID
func (r *IssueRepository) CreateIssue(ctx context.Context, issue *models.Issue) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("issues").
		Columns("title", "description", "status", "priority", "course_unit",
			"college", "created_by", "assigned_to").
		Values(issue.Title, issue.Description, issue.Status, issue.Priority, issue.CourseUnit,
			issue.College, issue.CreatedByID, issue.AssignedToID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create issue SQL")
		return 0, fmt.Errorf("failed to build create issue query: %w", err)
	}

	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("createdBy", issue.CreatedByID).Msg("Error executing create issue query")
		return 0, fmt.Errorf("error inserting issue: %w", err)
	}

	logger.Info().Int64("issueID", issue.ID).Int64("createdBy", issue.CreatedByID).Msg("Issue created successfully")
	return issue.ID, nil
}

// GetIssueByID retrieves an issue with its creator and assignee relations
func (r *IssueRepository) GetIssueByID(ctx context.Context, id int64) (*models.Issue, error) {
	sqlQuery, args, err := r.issueQuery().
		Where(squirrel.Eq{"i.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get issue SQL")
		return nil, fmt.Errorf("failed to build get issue query: %w", err)
	}

	issue, err := scanIssue(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		logger.Error().Err(err).Int64("issueID", id).Msg("Error scanning issue row")
		return nil, fmt.Errorf("error querying issue ID=%d: %w", id, err)
	}

	return issue, nil
}

// ListIssues retrieves the issues visible to the actor, newest first, with
// the total count for pagination
func (r *IssueRepository) ListIssues(ctx context.Context, actor *models.User, page, size int) ([]models.Issue, int, error) {
	scope := visibilityScope(actor)

	countBuilder := r.sb.Select("COUNT(*)").From("issues i")
	if scope != nil {
		countBuilder = countBuilder.Where(scope)
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count issues SQL")
		return nil, 0, fmt.Errorf("failed to build count issues query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting issues")
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	selectBuilder := r.issueQuery().
		OrderBy("i.created_at DESC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size))
	if scope != nil {
		selectBuilder = selectBuilder.Where(scope)
	}

	sqlQuery, args, err := selectBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list issues SQL")
		return nil, 0, fmt.Errorf("failed to build list issues query: %w", err)
	}

	issues, err := r.queryIssues(ctx, sqlQuery, args)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// ListRecentIssues retrieves the newest issues visible to the actor
func (r *IssueRepository) ListRecentIssues(ctx context.Context, actor *models.User, limit int) ([]models.Issue, error) {
	selectBuilder := r.issueQuery().
		OrderBy("i.created_at DESC").
		Limit(uint64(limit))
	if scope := visibilityScope(actor); scope != nil {
		selectBuilder = selectBuilder.Where(scope)
	}

	sqlQuery, args, err := selectBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building recent issues SQL")
		return nil, fmt.Errorf("failed to build recent issues query: %w", err)
	}

	return r.queryIssues(ctx, sqlQuery, args)
}

// ListUnassignedRecent retrieves the newest issues that have no assignee
func (r *IssueRepository) ListUnassignedRecent(ctx context.Context, limit int) ([]models.Issue, error) {
	sqlQuery, args, err := r.issueQuery().
		Where(squirrel.Eq{"i.assigned_to": nil}).
		OrderBy("i.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building unassigned issues SQL")
		return nil, fmt.Errorf("failed to build unassigned issues query: %w", err)
	}

	return r.queryIssues(ctx, sqlQuery, args)
}

func (r *IssueRepository) queryIssues(ctx context.Context, sqlQuery string, args []interface{}) ([]models.Issue, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing issues query")
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning issue row")
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, *issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}

	return issues, nil
}

// UpdateIssueFields applies field-level changes to an issue row
func (r *IssueRepository) UpdateIssueFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	sqlQuery, args, err := r.sb.Update("issues").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("issueID", id).Msg("Error building update issue SQL")
		return fmt.Errorf("failed to build update issue query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("issueID", id).Msg("Error executing update issue query")
		return fmt.Errorf("error updating issue ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssueNotFound
	}

	return nil
}

// DeleteIssue removes an issue; comments go with it through the cascade
func (r *IssueRepository) DeleteIssue(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Delete("issues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("issueID", id).Msg("Error building delete issue SQL")
		return fmt.Errorf("failed to build delete issue query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("issueID", id).Msg("Error executing delete issue query")
		return fmt.Errorf("error deleting issue ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssueNotFound
	}

	logger.Info().Int64("issueID", id).Msg("Issue deleted successfully")
	return nil
}

// CountByStatus aggregates the issues visible to the actor into a total
// and per-status counts
func (r *IssueRepository) CountByStatus(ctx context.Context, actor *models.User) (int, map[models.IssueStatus]int, error) {
	selectBuilder := r.sb.Select("i.status", "COUNT(*)").
		From("issues i").
		GroupBy("i.status")
	if scope := visibilityScope(actor); scope != nil {
		selectBuilder = selectBuilder.Where(scope)
	}

	sqlQuery, args, err := selectBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building status counts SQL")
		return 0, nil, fmt.Errorf("failed to build status counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing status counts query")
		return 0, nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer rows.Close()

	total := 0
	counts := make(map[models.IssueStatus]int)
	for rows.Next() {
		var status models.IssueStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			logger.Error().Err(err).Msg("Error scanning status count row")
			return 0, nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
		total += count
	}

	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("error iterating status count rows: %w", err)
	}

	return total, counts, nil
}

// CountByCreatorCollege aggregates all issues by the creator's college.
// Creators without a college land in the "Unknown" bucket.
func (r *IssueRepository) CountByCreatorCollege(ctx context.Context) (map[string]int, error) {
	sqlQuery, args, err := r.sb.Select("COALESCE(u.college, 'Unknown')", "COUNT(*)").
		From("issues i").
		Join("users u ON u.id = i.created_by").
		GroupBy("COALESCE(u.college, 'Unknown')").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building college counts SQL")
		return nil, fmt.Errorf("failed to build college counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing college counts query")
		return nil, fmt.Errorf("failed to query college counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var college string
		var count int
		if err := rows.Scan(&college, &count); err != nil {
			logger.Error().Err(err).Msg("Error scanning college count row")
			return nil, fmt.Errorf("failed to scan college count row: %w", err)
		}
		counts[college] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating college count rows: %w", err)
	}

	return counts, nil
}
