package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/superlists/internal/models"
)

// CreateItem adds an item to an existing list.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO items (list_id, text, created_at) VALUES (?, ?, ?)",
		item.ListID, item.Text, item.CreatedAt,
	)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("failed to insert item: %w", models.ErrUniqueViolation)
	case isForeignKeyViolation(err):
		return fmt.Errorf("list %d: %w", item.ListID, models.ErrNotFound)
	case err != nil:
		return fmt.Errorf("failed to insert item: %w", err)
	}

	item.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	return nil
}

// ListItems retrieves a list's items in creation order.
func (s *SQLiteStore) ListItems(ctx context.Context, listID int64) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, list_id, text, created_at FROM items WHERE list_id = ? ORDER BY id",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.ListID, &item.Text, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// FirstItem retrieves the item a list is named after.
func (s *SQLiteStore) FirstItem(ctx context.Context, listID int64) (*models.Item, error) {
	item := &models.Item{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, list_id, text, created_at FROM items WHERE list_id = ? ORDER BY id LIMIT 1",
		listID,
	).Scan(&item.ID, &item.ListID, &item.Text, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("first item of list %d: %w", listID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get first item: %w", err)
	}

	return item, nil
}

// ItemExists checks whether a list already contains an item with the given text.
func (s *SQLiteStore) ItemExists(ctx context.Context, listID int64, text string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM items WHERE list_id = ? AND text = ?",
		listID, text,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return true, nil
}
