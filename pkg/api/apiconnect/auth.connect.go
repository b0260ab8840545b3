package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/superlists/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "superlists.v1.AuthService"

// These constants are the fully-qualified names of the RPCs defined in AuthService.
const (
	AuthServiceRequestLoginLinkProcedure = "/superlists.v1.AuthService/RequestLoginLink"
	AuthServiceLoginProcedure            = "/superlists.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure   = "/superlists.v1.AuthService/GetCurrentUser"
	AuthServiceLogoutProcedure           = "/superlists.v1.AuthService/Logout"
)

// AuthServiceClient is a client for the superlists.v1.AuthService service.
type AuthServiceClient interface {
	RequestLoginLink(context.Context, *connect.Request[api.RequestLoginLinkRequest]) (*connect.Response[api.RequestLoginLinkResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
}

// NewAuthServiceClient constructs a client for the superlists.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &authServiceClient{
		requestLoginLink: connect.NewClient[api.RequestLoginLinkRequest, api.RequestLoginLinkResponse](httpClient, baseURL+AuthServiceRequestLoginLinkProcedure, opts...),
		login:            connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser:   connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		logout:           connect.NewClient[api.LogoutRequest, api.LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
	}
}

type authServiceClient struct {
	requestLoginLink *connect.Client[api.RequestLoginLinkRequest, api.RequestLoginLinkResponse]
	login            *connect.Client[api.LoginRequest, api.LoginResponse]
	getCurrentUser   *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	logout           *connect.Client[api.LogoutRequest, api.LogoutResponse]
}

func (c *authServiceClient) RequestLoginLink(ctx context.Context, req *connect.Request[api.RequestLoginLinkRequest]) (*connect.Response[api.RequestLoginLinkResponse], error) {
	return c.requestLoginLink.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *authServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

// AuthServiceHandler is an implementation of the superlists.v1.AuthService service.
type AuthServiceHandler interface {
	RequestLoginLink(context.Context, *connect.Request[api.RequestLoginLinkRequest]) (*connect.Response[api.RequestLoginLinkResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	requestLoginLink := connect.NewUnaryHandler(AuthServiceRequestLoginLinkProcedure, svc.RequestLoginLink, opts...)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	getCurrentUser := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	logout := connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRequestLoginLinkProcedure:
			requestLoginLink.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUser.ServeHTTP(w, r)
		case AuthServiceLogoutProcedure:
			logout.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) RequestLoginLink(context.Context, *connect.Request[api.RequestLoginLinkRequest]) (*connect.Response[api.RequestLoginLinkResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.AuthService.RequestLoginLink is not implemented"))
}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.AuthService.Login is not implemented"))
}

func (UnimplementedAuthServiceHandler) GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.AuthService.GetCurrentUser is not implemented"))
}

func (UnimplementedAuthServiceHandler) Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("superlists.v1.AuthService.Logout is not implemented"))
}
