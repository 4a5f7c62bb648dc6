//go:build integration

package repo_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/crucial707/inventory/internal/db"
	"github.com/crucial707/inventory/internal/models"
	"github.com/crucial707/inventory/internal/repo"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "inventory_test",
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/inventory_test?sslmode=disable", host, port.Port())

	if _, err := db.Migrate(dsn); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestMigrate_Idempotent(t *testing.T) {
	version, err := db.Migrate(dsn)
	require.NoError(t, err)
	require.Equal(t, uint(2), version)
}

func TestRepositories_Postgres(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Connect(ctx, dsn, 5, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepo(conn)
	products := repo.NewProductRepo(conn)
	now := time.Now().UTC().Truncate(time.Microsecond)

	alice, err := users.Create(ctx, models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h", CreatedAt: now})
	require.NoError(t, err)
	_, err = uuid.Parse(alice.ID)
	require.NoError(t, err)

	t.Run("unique constraints name the field", func(t *testing.T) {
		_, err := users.Create(ctx, models.User{Username: "alice2", Email: "a@x.com", PasswordHash: "h", CreatedAt: now})
		var dup *repo.DuplicateError
		require.ErrorAs(t, err, &dup)
		require.Equal(t, "email", dup.Field)

		_, err = users.Create(ctx, models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h", CreatedAt: now})
		require.ErrorAs(t, err, &dup)
		require.Equal(t, "username", dup.Field)
	})

	t.Run("find prefers the email match", func(t *testing.T) {
		bob, err := users.Create(ctx, models.User{Username: "bob", Email: "b@x.com", PasswordHash: "h", CreatedAt: now})
		require.NoError(t, err)

		got, err := users.FindByEmailOrUsername(ctx, "b@x.com", "alice")
		require.NoError(t, err)
		require.Equal(t, bob.ID, got.ID)

		_, err = users.FindByEmailOrUsername(ctx, "nobody@x.com", "nobody")
		require.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("product lifecycle", func(t *testing.T) {
		p, err := products.Create(ctx, models.Product{
			Name: "Widget", Price: 9.99, Owner: models.Owner{ID: alice.ID}, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)

		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Owner.Username)
		require.Equal(t, 0, got.Quantity)

		got.Price = 1
		got.UpdatedAt = now.Add(time.Second)
		updated, err := products.Update(ctx, got)
		require.NoError(t, err)
		require.Equal(t, 1.0, updated.Price)
		require.Equal(t, alice.ID, updated.Owner.ID)

		mine, err := products.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)

		require.NoError(t, products.Delete(ctx, p.ID))
		require.ErrorIs(t, products.Delete(ctx, p.ID), repo.ErrNotFound)

		_, err = products.GetByID(ctx, p.ID)
		require.True(t, errors.Is(err, repo.ErrNotFound))
	})

	t.Run("negative price violates the schema", func(t *testing.T) {
		_, err := products.Create(ctx, models.Product{
			Name: "Bad", Price: -1, Owner: models.Owner{ID: alice.ID}, CreatedAt: now, UpdatedAt: now,
		})
		require.Error(t, err)
	})

	t.Run("quantity beyond 32 bits round-trips", func(t *testing.T) {
		p, err := products.Create(ctx, models.Product{
			Name: "Bulk", Price: 1, Quantity: 3000000000, Owner: models.Owner{ID: alice.ID}, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		require.Equal(t, 3000000000, p.Quantity)
		require.NoError(t, products.Delete(ctx, p.ID))
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := products.GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, repo.ErrNotFound)
	})
}
