// Package lists implements the list operations: creating a list with its
// first item, adding items, sharing and computing the lists a user can see.
package lists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage"
)

// itemInput is the validated form of an item submission.
type itemInput struct {
	Text string `validate:"required"`
}

// Service implements list operations on top of a storage.Store.
// It holds no state of its own; the store serializes conflicting writes.
type Service struct {
	store    storage.Store
	validate *validator.Validate
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
	}
}

// cleanText trims the text and checks it is not empty.
func (s *Service) cleanText(text string) (string, error) {
	in := itemInput{Text: strings.TrimSpace(text)}
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return "", models.ErrEmptyItem
		}
		return "", fmt.Errorf("failed to validate item: %w", err)
	}
	return in.Text, nil
}

// CreateNew creates a list together with its first item. owner may be
// empty for an anonymous list. Either both rows are stored or neither is.
func (s *Service) CreateNew(ctx context.Context, firstItemText, owner string) (*models.List, error) {
	text, err := s.cleanText(firstItemText)
	if err != nil {
		return nil, err
	}

	list := &models.List{OwnerEmail: owner}
	item := &models.Item{Text: text}
	if err := s.store.CreateListWithItem(ctx, list, item); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	slog.Info("List created", "list_id", list.ID, "owner", owner)
	return list, nil
}

// AddItem appends an item to an existing list.
//
// Empty text fails with models.ErrEmptyItem and text already on the list
// with models.ErrDuplicateItem. A concurrent insert of the same text that
// slips past the existence check is reported as models.ErrDuplicateItem too.
func (s *Service) AddItem(ctx context.Context, listID int64, text string) (*models.Item, error) {
	text, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetList(ctx, listID); err != nil {
		return nil, err
	}

	exists, err := s.store.ItemExists(ctx, listID, text)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateItem
	}

	item := &models.Item{ListID: listID, Text: text}
	if err := s.store.CreateItem(ctx, item); err != nil {
		if errors.Is(err, models.ErrUniqueViolation) {
			slog.Warn("Concurrent duplicate item", "list_id", listID)
			return nil, models.ErrDuplicateItem
		}
		return nil, fmt.Errorf("add item: %w", err)
	}

	return item, nil
}

// Share grants shareeEmail access to the list. The sharee must already be
// a registered user. Sharing twice with the same user is a no-op.
func (s *Service) Share(ctx context.Context, listID int64, shareeEmail string) error {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if _, err := s.store.GetUser(ctx, shareeEmail); err != nil {
		return err
	}

	if list.IsSharedWith(shareeEmail) {
		slog.Debug("List already shared", "list_id", listID, "sharee", shareeEmail)
		return nil
	}
	if list.IsOwnedBy(shareeEmail) {
		// Stored, but VisibleListsFor still reports the list as owned only
		slog.Debug("Sharing list with its owner", "list_id", listID)
	}

	if err := s.store.AddSharee(ctx, listID, shareeEmail); err != nil {
		return fmt.Errorf("share list: %w", err)
	}

	slog.Info("List shared", "list_id", listID, "sharee", shareeEmail)
	return nil
}

// VisibleListsFor returns the lists email owns and, separately, the lists
// shared with email that email does not own.
func (s *Service) VisibleListsFor(ctx context.Context, email string) (*models.VisibleLists, error) {
	if _, err := s.store.GetUser(ctx, email); err != nil {
		return nil, err
	}

	owned, err := s.store.ListsOwnedBy(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("owned lists: %w", err)
	}
	shared, err := s.store.ListsSharedWith(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("shared lists: %w", err)
	}

	return &models.VisibleLists{Owned: owned, Shared: shared}, nil
}

// Get returns a list with its items in creation order.
func (s *Service) Get(ctx context.Context, listID int64) (*models.List, []models.Item, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.store.ListItems(ctx, listID)
	if err != nil {
		return nil, nil, fmt.Errorf("list items: %w", err)
	}
	return list, items, nil
}

// Name returns the text of the list's first item. ok is false when the
// list has no items and therefore no name.
func (s *Service) Name(ctx context.Context, listID int64) (name string, ok bool, err error) {
	if _, err := s.store.GetList(ctx, listID); err != nil {
		return "", false, err
	}
	item, err := s.store.FirstItem(ctx, listID)
	if errors.Is(err, models.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("list name: %w", err)
	}
	return item.Text, true, nil
}
