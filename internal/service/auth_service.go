package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/superlists/internal/auth"
	"github.com/mmynk/superlists/internal/middleware"
	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage"
	"github.com/mmynk/superlists/pkg/api"
	"github.com/mmynk/superlists/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	issuer        *auth.Issuer
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	validate      *validator.Validate
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(issuer *auth.Issuer, authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		issuer:        issuer,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		validate:      newValidator(),
		logger:        logger,
	}
}

// RequestLoginLink sends a login link to the given email address.
func (s *AuthService) RequestLoginLink(ctx context.Context, req *connect.Request[api.RequestLoginLinkRequest]) (*connect.Response[api.RequestLoginLinkResponse], error) {
	s.logger.Info("Login link request", "email", req.Msg.Email)

	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.issuer.SendLoginLink(ctx, req.Msg.Email); err != nil {
		s.logger.Error("Failed to send login link", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RequestLoginLinkResponse{}), nil
}

// Login exchanges a login-link token for a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Token)
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "email", user.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "email", user.Email)
	return connect.NewResponse(&api.LoginResponse{
		User:  userToAPI(user),
		Token: token,
	}), nil
}

// Logout clears the session cookie. Bearer-token clients discard their token.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request", "email", middleware.GetEmail(ctx))

	resp := connect.NewResponse(&api.LogoutResponse{})
	resp.Header().Add("Set-Cookie", (&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}).String())
	return resp, nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errLoginRequired)
	}

	user, err := s.users.GetUser(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		// Session outlived its user
		return nil, connect.NewError(connect.CodeUnauthenticated, errLoginRequired)
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: userToAPI(user)}), nil
}
