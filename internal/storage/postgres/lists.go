package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/superlists/internal/models"
)

func (s *Store) CreateListWithItem(ctx context.Context, list *models.List, item *models.Item) error {
	now := time.Now().Unix()
	if list.CreatedAt == 0 {
		list.CreatedAt = now
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if list.OwnerEmail != "" {
		if err := insertUser(ctx, tx, list.OwnerEmail); err != nil {
			return err
		}
	}

	var listID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO lists (owner_email, created_at) VALUES ($1, $2) RETURNING id`,
		nullable(list.OwnerEmail), list.CreatedAt,
	).Scan(&listID)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}

	var itemID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO items (list_id, text, created_at) VALUES ($1, $2, $3) RETURNING id`,
		listID, item.Text, item.CreatedAt,
	).Scan(&itemID)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	list.ID = listID
	list.Name = item.Text
	item.ID = itemID
	item.ListID = listID
	return nil
}

func (s *Store) GetList(ctx context.Context, listID int64) (*models.List, error) {
	query, args, err := selectLists().Where(sq.Eq{"l.id": listID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	list, err := scanList(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("list %d: %w", listID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT user_email FROM list_shared_with WHERE list_id = $1 ORDER BY user_email`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sharees: %w", err)
	}
	sharees, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan sharees: %w", err)
	}
	if len(sharees) > 0 {
		list.SharedWith = sharees
	}

	return list, nil
}

func (s *Store) AddSharee(ctx context.Context, listID int64, email string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO list_shared_with (list_id, user_email) VALUES ($1, $2) ON CONFLICT (list_id, user_email) DO NOTHING`,
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

func (s *Store) ListsOwnedBy(ctx context.Context, email string) ([]*models.List, error) {
	return s.queryLists(ctx, selectLists().Where(sq.Eq{"l.owner_email": email}))
}

func (s *Store) ListsSharedWith(ctx context.Context, email string) ([]*models.List, error) {
	return s.queryLists(ctx, selectLists().
		Join("list_shared_with s ON s.list_id = l.id").
		Where(sq.Eq{"s.user_email": email}).
		Where(sq.Or{sq.Eq{"l.owner_email": nil}, sq.NotEq{"l.owner_email": email}}),
	)
}

func (s *Store) queryLists(ctx context.Context, b sq.SelectBuilder) ([]*models.List, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
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
