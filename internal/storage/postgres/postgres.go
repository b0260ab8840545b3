// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements storage.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database at dsn and applies pending migrations.
func New(ctx context.Context, dsn string) (*Store, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := Migrate(dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.pool.Ping(ctx)
}

func selectLists() sq.SelectBuilder {
	return psql.Select(
		"l.id",
		"l.owner_email",
		"l.created_at",
		"COALESCE((SELECT i.text FROM items i WHERE i.list_id = l.id ORDER BY i.id LIMIT 1), '')",
	).From("lists l").OrderBy("l.id")
}

func scanList(row pgx.Row) (*models.List, error) {
	list := &models.List{}
	var owner *string
	if err := row.Scan(&list.ID, &owner, &list.CreatedAt, &list.Name); err != nil {
		return nil, err
	}
	if owner != nil {
		list.OwnerEmail = *owner
	}
	return list, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == foreignKeyViolation
}
