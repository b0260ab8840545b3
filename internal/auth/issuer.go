package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/mmynk/superlists/internal/storage"
)

// LoginPath is the route that consumes login links.
const LoginPath = "/accounts/login"

// Issuer creates login links. Each email has a single live token: asking
// again for the same email returns a link with the same uid.
type Issuer struct {
	store  storage.TokenStore
	mailer Mailer
	base   *url.URL

	// newUID generates token uids. Replaced in tests.
	newUID func() string
}

// NewIssuer creates an Issuer whose links point at baseURL, which must be
// an absolute URL such as "https://superlists.example.com".
func NewIssuer(store storage.TokenStore, mailer Mailer, baseURL string) (*Issuer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("base url must be absolute")
	}

	return &Issuer{
		store:  store,
		mailer: mailer,
		base:   base,
		newUID: func() string { return uuid.NewString() },
	}, nil
}

// IssueOrReuse returns a login URL for email, creating the email's token
// on first use.
func (i *Issuer) IssueOrReuse(ctx context.Context, email string) (string, error) {
	token, created, err := i.store.GetOrCreateToken(ctx, email, i.newUID())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	slog.Debug("Login token ready", "email", email, "created", created)
	return i.LoginURL(token.UID), nil
}

// SendLoginLink issues a login URL for email and hands it to the mailer.
func (i *Issuer) SendLoginLink(ctx context.Context, email string) error {
	link, err := i.IssueOrReuse(ctx, email)
	if err != nil {
		return err
	}
	if err := i.mailer.SendLoginLink(ctx, email, link); err != nil {
		return fmt.Errorf("send login link: %w", err)
	}
	return nil
}

// LoginURL builds the absolute login URL carrying uid.
func (i *Issuer) LoginURL(uid string) string {
	u := i.base.JoinPath(LoginPath)
	u.RawQuery = url.Values{"token": {uid}}.Encode()
	return u.String()
}
