// Package seed creates the default accounts a fresh deployment needs.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/makerere/aits/internal/app/models"
	"github.com/makerere/aits/internal/pkg/auth"
	"github.com/makerere/aits/internal/pkg/logger"
)

// Environment overrides for the default account passwords
const (
	adminPasswordEnv     = "AITS_ADMIN_PASSWORD"
	registrarPasswordEnv = "AITS_REGISTRAR_PASSWORD"
)

type defaultAccount struct {
	email       string
	passwordEnv string
	fallback    string
	firstName   string
	lastName    string
	role        models.RoleType
	college     *string
}

// CreateDefaultData inserts the default admin and academic registrar
// accounts when they do not exist yet
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool) error {
	registry := "Office of the Academic Registrar"
	accounts := []defaultAccount{
		{
			email:       "admin@aits.mak.ac.ug",
			passwordEnv: adminPasswordEnv,
			fallback:    "ChangeMe.Admin1",
			firstName:   "System",
			lastName:    "Administrator",
			role:        models.RoleAdmin,
		},
		{
			email:       "registrar@aits.mak.ac.ug",
			passwordEnv: registrarPasswordEnv,
			fallback:    "ChangeMe.Registrar1",
			firstName:   "Academic",
			lastName:    "Registrar",
			role:        models.RoleAcademicRegistrar,
			college:     &registry,
		},
	}

	for _, account := range accounts {
		if err := ensureAccount(ctx, pool, account); err != nil {
			return err
		}
	}

	return nil
}

func ensureAccount(ctx context.Context, pool *pgxpool.Pool, account defaultAccount) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, account.email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check default account %s: %w", account.email, err)
	}
	if exists {
		return nil
	}

	password := os.Getenv(account.passwordEnv)
	if password == "" {
		password = account.fallback
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, password, first_name, last_name, role_type, college)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING`,
		account.email, hashed, account.firstName, account.lastName, account.role, account.college)
	if err != nil {
		return fmt.Errorf("failed to create default account %s: %w", account.email, err)
	}

	logger.Info().Str("email", account.email).Str("roleType", string(account.role)).Msg("Default account created")
	return nil
}
