package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ptotracker/internal/platform/querier"
)

var ErrManagerNotFound = errors.New("manager not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type Manager struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
}

func (s *Store) FindManagerByUsername(ctx context.Context, username string) (Manager, error) {
	var out Manager
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, full_name, role
    FROM managers
    WHERE username = $1
  `, username).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.FullName, &out.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return Manager{}, ErrManagerNotFound
	}
	return out, err
}
