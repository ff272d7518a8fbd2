package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/shopnest/backend/store"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and avoids
	// sqlite writer contention.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.CreateTables(context.Background(), db))

	return db
}

func newTestRepos(t *testing.T) store.RepositoryManager {
	t.Helper()

	repo := store.NewRepositoryManager(newTestDB(t))
	require.NoError(t, repo.Validate())
	return repo
}
