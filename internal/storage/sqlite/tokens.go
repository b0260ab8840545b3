package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/superlists/internal/models"
)

// GetOrCreateToken returns the email's token, inserting one with uid when
// the email has none. The insert ignores an email conflict, so concurrent
// callers for the same email all read back the single winning row.
func (s *SQLiteStore) GetOrCreateToken(ctx context.Context, email, uid string) (*models.Token, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertUser(ctx, tx, email); err != nil {
		return nil, false, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO tokens (email, uid, created_at) VALUES (?, ?, ?) ON CONFLICT (email) DO NOTHING",
		email, uid, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("failed to insert token: %w", models.ErrUniqueViolation)
		}
		return nil, false, fmt.Errorf("failed to insert token: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	token := &models.Token{}
	err = tx.QueryRowContext(ctx,
		"SELECT email, uid, created_at FROM tokens WHERE email = ?",
		email,
	).Scan(&token.Email, &token.UID, &token.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return token, inserted == 1, nil
}

// GetTokenByUID retrieves a token by its uid.
func (s *SQLiteStore) GetTokenByUID(ctx context.Context, uid string) (*models.Token, error) {
	token := &models.Token{}
	err := s.db.QueryRowContext(ctx,
		"SELECT email, uid, created_at FROM tokens WHERE uid = ?",
		uid,
	).Scan(&token.Email, &token.UID, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("token: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}
