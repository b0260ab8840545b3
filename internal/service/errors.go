package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/superlists/internal/auth"
	"github.com/mmynk/superlists/internal/models"
)

var errLoginRequired = errors.New("login required")

// toConnectError maps domain errors to Connect codes. Validation errors keep
// their user-facing message.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return connect.NewError(connect.CodeInvalidArgument, verr)
	case errors.Is(err, auth.ErrInvalidLoginToken):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidLoginToken)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrUniqueViolation):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
