package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage"
)

var ErrInvalidLoginToken = errors.New("invalid login token")

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping login methods (login links, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credential and returns the user it belongs to.
	// The credential format depends on the implementation.
	Authenticate(ctx context.Context, credential string) (*models.User, error)
}

// UserTokenStorage is the persistence a TokenAuthenticator needs.
type UserTokenStorage interface {
	storage.UserStore
	GetTokenByUID(ctx context.Context, uid string) (*models.Token, error)
}

// TokenAuthenticator authenticates the uid carried by a login link.
// The token stays valid after use; the user is created on first login.
type TokenAuthenticator struct {
	storage UserTokenStorage
}

// NewTokenAuthenticator creates a login-link authenticator.
func NewTokenAuthenticator(storage UserTokenStorage) *TokenAuthenticator {
	return &TokenAuthenticator{storage: storage}
}

// Authenticate resolves uid to its email and returns the matching user.
// Unknown uids fail with an error matching both ErrInvalidLoginToken and
// models.ErrNotFound.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, ErrInvalidLoginToken
	}

	token, err := a.storage.GetTokenByUID(ctx, uid)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLoginToken, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	user, err := a.storage.EnsureUser(ctx, token.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
