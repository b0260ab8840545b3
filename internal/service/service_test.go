package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/superlists/internal/auth"
	"github.com/mmynk/superlists/internal/lists"
	"github.com/mmynk/superlists/internal/middleware"
	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage/sqlite"
	"github.com/mmynk/superlists/pkg/api"
	"github.com/mmynk/superlists/pkg/api/apiconnect"
)

// linkMailer keeps the last login link sent to each address.
type linkMailer struct {
	mu    sync.Mutex
	links map[string]string
}

func (m *linkMailer) SendLoginLink(_ context.Context, email, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[email] = link
	return nil
}

func (m *linkMailer) token(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[email]
	require.True(t, ok, "no link sent to %s", email)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

type testEnv struct {
	lists  apiconnect.ListServiceClient
	auth   apiconnect.AuthServiceClient
	store  *sqlite.SQLiteStore
	mailer *linkMailer
	server *httptest.Server
}

// setupTestServer creates a test server with both ListService and AuthService
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	mailer := &linkMailer{links: make(map[string]string)}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewTokenAuthenticator(store)

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	issuer, err := auth.NewIssuer(store, mailer, server.URL)
	require.NoError(t, err)

	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	listPath, listHandler := apiconnect.NewListServiceHandler(NewListService(lists.NewService(store)), interceptors)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		NewAuthService(issuer, authenticator, jwtManager, store, slog.Default()),
		interceptors,
	)

	mux.Handle(listPath, listHandler)
	mux.Handle(authPath, authHandler)
	mux.Handle(auth.LoginPath, NewLoginHandler(authenticator, jwtManager))

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		lists:  apiconnect.NewListServiceClient(http.DefaultClient, server.URL),
		auth:   apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		store:  store,
		mailer: mailer,
		server: server,
	}
}

// login runs the login-link flow for email and returns the session token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()

	_, err := e.auth.RequestLoginLink(ctx, connect.NewRequest(&api.RequestLoginLinkRequest{Email: email}))
	require.NoError(t, err)

	resp, err := e.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Token: e.mailer.token(t, email)}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return resp.Msg.Token
}

func withSession[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateList(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.lists.CreateList(context.Background(), connect.NewRequest(&api.CreateListRequest{
		Text: "Buy milk",
	}))
	require.NoError(t, err)

	require.NotNil(t, resp.Msg.List)
	assert.NotZero(t, resp.Msg.List.ID)
	assert.Equal(t, "Buy milk", resp.Msg.List.Name)
	assert.Empty(t, resp.Msg.List.OwnerEmail)
	require.Len(t, resp.Msg.Items, 1)
	assert.Equal(t, "Buy milk", resp.Msg.Items[0].Text)
}

func TestCreateList_EmptyText(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.lists.CreateList(context.Background(), connect.NewRequest(&api.CreateListRequest{
		Text: "  ",
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, models.EmptyItemMessage, connectErr.Message())
}

func TestCreateList_LoggedInOwnsList(t *testing.T) {
	env := setupTestServer(t)
	token := env.login(t, "a@b.com")

	resp, err := env.lists.CreateList(context.Background(), withSession(&api.CreateListRequest{Text: "Buy milk"}, token))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", resp.Msg.List.OwnerEmail)
}

func TestGetList(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created, err := env.lists.CreateList(ctx, connect.NewRequest(&api.CreateListRequest{Text: "Buy milk"}))
	require.NoError(t, err)
	listID := created.Msg.List.ID

	_, err = env.lists.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{ListID: listID, Text: "Walk dog"}))
	require.NoError(t, err)

	resp, err := env.lists.GetList(ctx, connect.NewRequest(&api.GetListRequest{ListID: listID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Items, 2)
	assert.Equal(t, "Buy milk", resp.Msg.Items[0].Text)
	assert.Equal(t, "Walk dog", resp.Msg.Items[1].Text)
	assert.Equal(t, "Buy milk", resp.Msg.List.Name)

	t.Run("not found", func(t *testing.T) {
		_, err := env.lists.GetList(ctx, connect.NewRequest(&api.GetListRequest{ListID: 9999}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestAddItem_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created, err := env.lists.CreateList(ctx, connect.NewRequest(&api.CreateListRequest{Text: "Buy milk"}))
	require.NoError(t, err)
	listID := created.Msg.List.ID

	tests := []struct {
		name     string
		listID   int64
		text     string
		wantCode connect.Code
		wantMsg  string
	}{
		{"empty", listID, "", connect.CodeInvalidArgument, models.EmptyItemMessage},
		{"duplicate", listID, "Buy milk", connect.CodeInvalidArgument, models.DuplicateItemMessage},
		{"unknown list", 9999, "Walk dog", connect.CodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.lists.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{ListID: tt.listID, Text: tt.text}))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
			if tt.wantMsg != "" {
				var connectErr *connect.Error
				require.ErrorAs(t, err, &connectErr)
				assert.Equal(t, tt.wantMsg, connectErr.Message())
			}
		})
	}
}

func TestShareList(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created, err := env.lists.CreateList(ctx, connect.NewRequest(&api.CreateListRequest{Text: "Buy milk"}))
	require.NoError(t, err)
	listID := created.Msg.List.ID

	t.Run("invalid email", func(t *testing.T) {
		_, err := env.lists.ShareList(ctx, connect.NewRequest(&api.ShareListRequest{ListID: listID, Email: "not-an-email"}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.lists.ShareList(ctx, connect.NewRequest(&api.ShareListRequest{ListID: listID, Email: "x@y.com"}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("known user", func(t *testing.T) {
		env.login(t, "bob@y.com")

		resp, err := env.lists.ShareList(ctx, connect.NewRequest(&api.ShareListRequest{ListID: listID, Email: "bob@y.com"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"bob@y.com"}, resp.Msg.List.SharedWith)
	})
}

func TestMyLists_RequiresLogin(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.lists.MyLists(context.Background(), connect.NewRequest(&api.MyListsRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestSharingScenario(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.login(t, "alice@x.com")
	bob := env.login(t, "bob@y.com")

	created, err := env.lists.CreateList(ctx, withSession(&api.CreateListRequest{Text: "Buy milk"}, alice))
	require.NoError(t, err)
	listID := created.Msg.List.ID

	_, err = env.lists.AddItem(ctx, withSession(&api.AddItemRequest{ListID: listID, Text: "Walk dog"}, alice))
	require.NoError(t, err)

	_, err = env.lists.ShareList(ctx, withSession(&api.ShareListRequest{ListID: listID, Email: "bob@y.com"}, alice))
	require.NoError(t, err)

	bobLists, err := env.lists.MyLists(ctx, withSession(&api.MyListsRequest{}, bob))
	require.NoError(t, err)
	assert.Empty(t, bobLists.Msg.Owned)
	require.Len(t, bobLists.Msg.Shared, 1)
	assert.Equal(t, listID, bobLists.Msg.Shared[0].ID)
	assert.Equal(t, "Buy milk", bobLists.Msg.Shared[0].Name)

	aliceLists, err := env.lists.MyLists(ctx, withSession(&api.MyListsRequest{}, alice))
	require.NoError(t, err)
	require.Len(t, aliceLists.Msg.Owned, 1)
	assert.Equal(t, listID, aliceLists.Msg.Owned[0].ID)
	assert.Empty(t, aliceLists.Msg.Shared)
}

func TestRequestLoginLink(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	t.Run("invalid email", func(t *testing.T) {
		_, err := env.auth.RequestLoginLink(ctx, connect.NewRequest(&api.RequestLoginLinkRequest{Email: "nope"}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		var connectErr *connect.Error
		require.ErrorAs(t, err, &connectErr)
		assert.Equal(t, "email must be a valid email address", connectErr.Message())
	})

	t.Run("repeat requests reuse the token", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := env.auth.RequestLoginLink(ctx, connect.NewRequest(&api.RequestLoginLinkRequest{Email: "a@b.com"}))
			require.NoError(t, err)
		}
		first := env.mailer.token(t, "a@b.com")

		token, err := env.store.GetTokenByUID(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", token.Email)
	})
}

func TestLoginAndCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	t.Run("bad token", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Token: "bogus"}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("anonymous current user", func(t *testing.T) {
		_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("logged in", func(t *testing.T) {
		token := env.login(t, "a@b.com")

		resp, err := env.auth.GetCurrentUser(ctx, withSession(&api.GetCurrentUserRequest{}, token))
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", resp.Msg.User.Email)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		resp, err := env.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{}))
		require.NoError(t, err)
		assert.Contains(t, resp.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")
	})
}

func TestLoginLinkHandler(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.auth.RequestLoginLink(ctx, connect.NewRequest(&api.RequestLoginLinkRequest{Email: "a@b.com"}))
	require.NoError(t, err)
	uid := env.mailer.token(t, "a@b.com")

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	t.Run("valid link sets the session cookie", func(t *testing.T) {
		resp, err := client.Get(env.server.URL + auth.LoginPath + "?token=" + uid)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		var session *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == middleware.SessionCookie {
				session = c
			}
		}
		require.NotNil(t, session)

		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		req.Header().Set("Cookie", (&http.Cookie{Name: session.Name, Value: session.Value}).String())
		me, err := env.auth.GetCurrentUser(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", me.Msg.User.Email)
	})

	t.Run("unknown token redirects without a session", func(t *testing.T) {
		resp, err := client.Get(env.server.URL + auth.LoginPath + "?token=bogus")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Empty(t, resp.Cookies())
	})
}
