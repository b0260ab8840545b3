package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mmynk/superlists/internal/models"
)

// CreateListWithItem persists a new list and its first item atomically.
func (s *SQLiteStore) CreateListWithItem(ctx context.Context, list *models.List, item *models.Item) error {
	now := time.Now().Unix()
	if list.CreatedAt == 0 {
		list.CreatedAt = now
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if list.OwnerEmail != "" {
		if err := insertUser(ctx, tx, list.OwnerEmail); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO lists (owner_email, created_at) VALUES (?, ?)",
		nullable(list.OwnerEmail), list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read list id: %w", err)
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO items (list_id, text, created_at) VALUES (?, ?, ?)",
		listID, item.Text, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	itemID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	list.ID = listID
	list.Name = item.Text
	item.ID = itemID
	item.ListID = listID
	return nil
}

// GetList retrieves a list by ID, including its name and sharees.
func (s *SQLiteStore) GetList(ctx context.Context, listID int64) (*models.List, error) {
	query, args, err := selectLists().Where(sq.Eq{"l.id": listID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	list, err := scanList(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %d: %w", listID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_email FROM list_shared_with WHERE list_id = ? ORDER BY user_email",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sharees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan sharee: %w", err)
		}
		list.SharedWith = append(list.SharedWith, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sharees: %w", err)
	}

	return list, nil
}

// AddSharee shares a list with a user. Re-adding a sharee changes nothing.
func (s *SQLiteStore) AddSharee(ctx context.Context, listID int64, email string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO list_shared_with (list_id, user_email) VALUES (?, ?) ON CONFLICT (list_id, user_email) DO NOTHING",
		listID, email,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("failed to add sharee: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to add sharee: %w", err)
	}
	return nil
}

// ListsOwnedBy retrieves the lists owned by a user.
func (s *SQLiteStore) ListsOwnedBy(ctx context.Context, email string) ([]*models.List, error) {
	return s.queryLists(ctx, selectLists().Where(sq.Eq{"l.owner_email": email}))
}

// ListsSharedWith retrieves the lists shared with a user that the user does not own.
func (s *SQLiteStore) ListsSharedWith(ctx context.Context, email string) ([]*models.List, error) {
	return s.queryLists(ctx, selectLists().
		Join("list_shared_with s ON s.list_id = l.id").
		Where(sq.Eq{"s.user_email": email}).
		Where(sq.Or{sq.Eq{"l.owner_email": nil}, sq.NotEq{"l.owner_email": email}}),
	)
}

func (s *SQLiteStore) queryLists(ctx context.Context, b sq.SelectBuilder) ([]*models.List, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	return lists, nil
}
