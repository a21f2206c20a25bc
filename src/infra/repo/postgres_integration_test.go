//go:build integration

package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"employeeapi/src/core/domain"
	"employeeapi/src/infra/config"
	"employeeapi/src/infra/db"
	"employeeapi/src/infra/logger"
	"employeeapi/src/infra/repo"
)

func TestPostgresRepository_Integration(t *testing.T) {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("employees"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(ctr))
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := logger.Discard()
	pg, err := db.Open(ctx, dsn, config.DatabaseConfig{MaxOpenConns: 4}, log)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, pg.Migrate(ctx))
	// Applying twice is a no-op.
	require.NoError(t, pg.Migrate(ctx))

	r := repo.NewPostgresRepository(pg.Pool, log, nil)
	require.NoError(t, r.Health(ctx))

	a, err := r.Create(ctx, newEmployee("A", "a@x.com"))
	require.NoError(t, err)
	assert.True(t, domain.ValidID(a.ID))
	assert.True(t, a.DateOfBirth.Equal(born))

	_, err = r.Create(ctx, newEmployee("A2", "a@x.com"))
	assert.True(t, domain.IsConflict(err))

	dept := "Research"
	updated, err := r.Update(ctx, a.ID, domain.EmployeePatch{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Research", updated.Department)
	assert.Equal(t, "A", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(a.UpdatedAt))

	again, err := r.Update(ctx, a.ID, domain.EmployeePatch{Department: &dept})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.Equal(updated.UpdatedAt))
	assert.True(t, again.SameValues(*updated))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, a.ID))
	assert.True(t, domain.IsNotFound(r.Delete(ctx, a.ID)))

	_, err = r.GetByID(ctx, "not-an-id")
	assert.True(t, domain.IsNotFound(err))
}
