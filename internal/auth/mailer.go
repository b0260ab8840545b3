package auth

import (
	"context"
	"log/slog"
)

// Mailer delivers login links.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

// LogMailer writes login links to the log instead of sending email.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer. A nil logger uses slog.Default().
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendLoginLink(ctx context.Context, email, link string) error {
	m.logger.InfoContext(ctx, "Login link", "email", email, "link", link)
	return nil
}
