package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/superlists/internal/models"
)

// execer is implemented by *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertUser(ctx context.Context, db execer, email string) error {
	user := models.NewUser(email)
	_, err := db.Exec(ctx,
		`INSERT INTO users (email, created_at) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		user.Email, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) EnsureUser(ctx context.Context, email string) (*models.User, error) {
	if err := insertUser(ctx, s.pool, email); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, email)
}

func (s *Store) GetUser(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT email, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (s *Store) GetOrCreateToken(ctx context.Context, email, uid string) (*models.Token, bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, email); err != nil {
		return nil, false, err
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO tokens (email, uid, created_at) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING`,
		email, uid, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("failed to insert token: %w", models.ErrUniqueViolation)
		}
		return nil, false, fmt.Errorf("failed to insert token: %w", err)
	}

	token := &models.Token{}
	err = tx.QueryRow(ctx,
		`SELECT email, uid, created_at FROM tokens WHERE email = $1`,
		email,
	).Scan(&token.Email, &token.UID, &token.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return token, tag.RowsAffected() == 1, nil
}

func (s *Store) GetTokenByUID(ctx context.Context, uid string) (*models.Token, error) {
	token := &models.Token{}
	err := s.pool.QueryRow(ctx,
		`SELECT email, uid, created_at FROM tokens WHERE uid = $1`,
		uid,
	).Scan(&token.Email, &token.UID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}
