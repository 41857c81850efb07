package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/apperrors"
	"github.com/makerere/aits/internal/pkg/logger"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type",
	"college", "phone_number", "student_number", "created_at", "updated_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var college, studentNumber sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleType, &college, &user.PhoneNumber, &studentNumber,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if college.Valid {
		user.College = &college.String
	}
	if studentNumber.Valid {
		user.StudentNumber = &studentNumber.String
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type",
			"college", "phone_number", "student_number").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType,
			user.College, user.PhoneNumber, user.StudentNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	logger.Info().Int64("userID", id).Str("roleType", string(user.RoleType)).Msg("User created successfully")
	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlQuery, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row by ID")
		return nil, fmt.Errorf("error querying user ID=%d: %w", id, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlQuery, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row by email")
		return nil, fmt.Errorf("error querying user email=%s: %w", email, err)
	}

	return user, nil
}

// ListUsers retrieves all users, optionally filtered by role
func (r *UserRepository) ListUsers(ctx context.Context, role *models.RoleType) ([]models.User, error) {
	selectBuilder := r.sb.Select(userColumns...).
		From("users").
		OrderBy("last_name ASC", "first_name ASC")

	if role != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"role_type": *role})
	}

	sqlQuery, args, err := selectBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// ListUsersByRole retrieves every user holding the given role
func (r *UserRepository) ListUsersByRole(ctx context.Context, role models.RoleType) ([]models.User, error) {
	return r.ListUsers(ctx, &role)
}

// UpdateProfile applies field-level changes to a user row
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	updateBuilder := r.sb.Update("users").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := updateBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error building update user SQL")
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error executing update user query")
		return fmt.Errorf("error updating user ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Int64("userID", id).Msg("Attempted to update non-existent user")
		return apperrors.ErrUserNotFound
	}

	return nil
}
