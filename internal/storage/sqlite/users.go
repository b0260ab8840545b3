package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/superlists/internal/models"
)

// execer is implemented by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertUser creates the user row if it does not exist yet.
func insertUser(ctx context.Context, db execer, email string) error {
	user := models.NewUser(email)
	_, err := db.ExecContext(ctx,
		"INSERT INTO users (email, created_at) VALUES (?, ?) ON CONFLICT (email) DO NOTHING",
		user.Email, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// EnsureUser creates the user if needed and returns the stored row.
func (s *SQLiteStore) EnsureUser(ctx context.Context, email string) (*models.User, error) {
	if err := insertUser(ctx, s.db, email); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, email)
}

// GetUser retrieves a user by their email address.
func (s *SQLiteStore) GetUser(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT email, created_at FROM users WHERE email = ?",
		email,
	).Scan(&user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
