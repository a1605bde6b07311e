package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ptotracker/internal/domain/auth"
	"ptotracker/internal/platform/config"
)

var defaultPTOTypes = []struct {
	Code         string
	DisplayName  string
	DefaultHours float64
}{
	{"PERSONAL", "Personal Time", 40},
	{"SICK", "Sick Time", 40},
	{"VACATION", "Vacation Time", 40},
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureDefaultPTOTypes(ctx, pool); err != nil {
		return err
	}
	return ensureAdminManager(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword, cfg.SeedAdminFullName)
}

// ensureDefaultPTOTypes seeds the standard leave categories only when the
// table is empty, so retired or renamed types are never resurrected.
func ensureDefaultPTOTypes(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM pto_types").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, t := range defaultPTOTypes {
		_, err := pool.Exec(ctx, `
      INSERT INTO pto_types (code, display_name, is_active, default_hours)
      VALUES ($1, $2, TRUE, $3)
      ON CONFLICT (code) DO NOTHING
    `, t.Code, t.DisplayName, t.DefaultHours)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminManager(ctx context.Context, pool *pgxpool.Pool, username, password, fullName string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM managers WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO managers (username, password_hash, full_name, role)
    VALUES ($1, $2, $3, $4)
  `, username, hash, fullName, auth.RoleAdmin)
	return err
}
