package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/superlists/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"

	// SessionCookie is the cookie that carries the session token for
	// browser clients.
	SessionCookie = "session"
)

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithEmail returns a copy of ctx carrying the authenticated email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

// sessionToken extracts the session token from the Authorization header,
// falling back to the session cookie.
func sessionToken(header http.Header) (string, error) {
	if authHeader := header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", auth.ErrInvalidToken
		}
		return parts[1], nil
	}

	req := http.Request{Header: header}
	cookie, err := req.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", auth.ErrMissingToken
	}
	return cookie.Value, nil
}

// OptionalAuth returns a middleware that validates session tokens if present, but allows
// anonymous requests. Anonymous visitors can still create and edit lists, so
// handlers that need a user check GetEmail themselves.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, err := sessionToken(req.Header()); err == nil {
				// Invalid tokens are ignored
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithEmail(ctx, claims.Email)
				}
			}

			return next(ctx, req)
		}
	}
}
