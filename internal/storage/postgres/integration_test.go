//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mmynk/superlists/internal/models"
	"github.com/mmynk/superlists/internal/storage/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "superlists_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/superlists_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store, err := postgres.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	t.Run("tokens", func(t *testing.T) {
		first, created, err := store.GetOrCreateToken(ctx, "a@b.com", "uid-1")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := store.GetOrCreateToken(ctx, "a@b.com", "uid-2")
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, first.UID, second.UID)

		_, _, err = store.GetOrCreateToken(ctx, "c@d.com", "uid-1")
		require.ErrorIs(t, err, models.ErrUniqueViolation)

		byUID, err := store.GetTokenByUID(ctx, "uid-1")
		require.NoError(t, err)
		require.Equal(t, "a@b.com", byUID.Email)
	})

	t.Run("lists and items", func(t *testing.T) {
		list := &models.List{OwnerEmail: "alice@x.com"}
		require.NoError(t, store.CreateListWithItem(ctx, list, &models.Item{Text: "Buy milk"}))
		require.NoError(t, store.CreateItem(ctx, &models.Item{ListID: list.ID, Text: "Walk dog"}))

		err := store.CreateItem(ctx, &models.Item{ListID: list.ID, Text: "Walk dog"})
		require.ErrorIs(t, err, models.ErrUniqueViolation)

		items, err := store.ListItems(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Buy milk", items[0].Text)

		got, err := store.GetList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Name)
	})

	t.Run("sharing", func(t *testing.T) {
		_, err := store.EnsureUser(ctx, "bob@y.com")
		require.NoError(t, err)

		list := &models.List{OwnerEmail: "alice@x.com"}
		require.NoError(t, store.CreateListWithItem(ctx, list, &models.Item{Text: "Shared"}))
		require.NoError(t, store.AddSharee(ctx, list.ID, "bob@y.com"))
		require.NoError(t, store.AddSharee(ctx, list.ID, "bob@y.com"))
		require.ErrorIs(t, store.AddSharee(ctx, list.ID, "ghost@y.com"), models.ErrNotFound)

		shared, err := store.ListsSharedWith(ctx, "bob@y.com")
		require.NoError(t, err)
		require.Len(t, shared, 1)
		assert.Equal(t, list.ID, shared[0].ID)

		owned, err := store.ListsOwnedBy(ctx, "bob@y.com")
		require.NoError(t, err)
		assert.Empty(t, owned)
	})
}
