// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/superlists/internal/models"
)

// Store defines the interface for all persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Implementations enforce uniqueness at commit time and report a lost race
// as models.ErrUniqueViolation. Lookups of missing rows return
// models.ErrNotFound.
type Store interface {
	UserStore
	TokenStore
	ListStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists users keyed by email.
type UserStore interface {
	// EnsureUser creates the user if it does not exist yet and returns it.
	EnsureUser(ctx context.Context, email string) (*models.User, error)

	// GetUser retrieves a user by email.
	GetUser(ctx context.Context, email string) (*models.User, error)
}

// TokenStore persists login tokens, at most one per email.
type TokenStore interface {
	// GetOrCreateToken returns the token for email, creating it with uid
	// if none exists. created reports whether a new row was inserted.
	// The token's user is created alongside it.
	GetOrCreateToken(ctx context.Context, email, uid string) (token *models.Token, created bool, err error)

	// GetTokenByUID retrieves a token by its uid.
	GetTokenByUID(ctx context.Context, uid string) (*models.Token, error)
}

// ListStore persists lists, their items and their sharees.
type ListStore interface {
	// CreateListWithItem inserts the list and its first item in a single
	// transaction. IDs and timestamps are populated on success.
	CreateListWithItem(ctx context.Context, list *models.List, item *models.Item) error

	// GetList retrieves a list with its derived name and sharees.
	GetList(ctx context.Context, listID int64) (*models.List, error)

	// ListItems returns the list's items in ascending ID order.
	ListItems(ctx context.Context, listID int64) ([]models.Item, error)

	// FirstItem returns the item with the lowest ID, or models.ErrNotFound
	// when the list is empty.
	FirstItem(ctx context.Context, listID int64) (*models.Item, error)

	// ItemExists reports whether the list already has an item with text.
	ItemExists(ctx context.Context, listID int64, text string) (bool, error)

	// CreateItem inserts an item. ID and CreatedAt are populated on success.
	CreateItem(ctx context.Context, item *models.Item) error

	// AddSharee shares the list with email. Adding an existing sharee is a no-op.
	AddSharee(ctx context.Context, listID int64, email string) error

	// ListsOwnedBy returns the lists owned by email in creation order.
	ListsOwnedBy(ctx context.Context, email string) ([]*models.List, error)

	// ListsSharedWith returns the lists shared with email, excluding lists
	// email owns, in creation order.
	ListsSharedWith(ctx context.Context, email string) ([]*models.List, error)
}
