package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/superlists/internal/models"
)

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO items (list_id, text, created_at) VALUES ($1, $2, $3) RETURNING id`,
		item.ListID, item.Text, item.CreatedAt,
	).Scan(&item.ID)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("failed to insert item: %w", models.ErrUniqueViolation)
	case isForeignKeyViolation(err):
		return fmt.Errorf("list %d: %w", item.ListID, models.ErrNotFound)
	case err != nil:
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *Store) ListItems(ctx context.Context, listID int64) ([]models.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, list_id, text, created_at FROM items WHERE list_id = $1 ORDER BY id`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Item, error) {
		var item models.Item
		err := row.Scan(&item.ID, &item.ListID, &item.Text, &item.CreatedAt)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Store) FirstItem(ctx context.Context, listID int64) (*models.Item, error) {
	item := &models.Item{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, list_id, text, created_at FROM items WHERE list_id = $1 ORDER BY id LIMIT 1`,
		listID,
	).Scan(&item.ID, &item.ListID, &item.Text, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("first item of list %d: %w", listID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get first item: %w", err)
	}
	return item, nil
}

func (s *Store) ItemExists(ctx context.Context, listID int64, text string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE list_id = $1 AND text = $2)`,
		listID, text,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists, nil
}
