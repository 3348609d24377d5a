package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpenko/trademark-registry/backend/migrations"
	"github.com/mkarpenko/trademark-registry/backend/testutil"
)

// TestMigrations is an integration test that verifies the full migration
// round-trip against a real Postgres database:
//
//  1. Apply all migrations (goose up).
//  2. Assert the trademarks table, its indexes, and pg_trgm exist.
//  3. Roll back all migrations (goose reset).
//  4. Assert the table has been removed.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// --- Ensure a clean baseline before testing ---
	// Another package's TestMain may have already applied migrations against this
	// shared test DB. Reset to version 0 first so this test is self-contained and
	// order-independent, whether run alone or as part of the full suite.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	assert.True(t, tableExists(t, db, "trademarks"), "trademarks table should exist after up")
	assert.True(t, indexExists(t, db, "trademarks_title_key"), "unique title index should exist")
	assert.True(t, indexExists(t, db, "trademarks_title_trgm_idx"), "trigram index should exist")
	assert.True(t, extensionExists(t, db, "pg_trgm"), "pg_trgm extension should be installed")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose reset")

	assert.False(t, tableExists(t, db, "trademarks"), "trademarks table should be gone after reset")
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
		name,
	).Scan(&exists)
	require.NoError(t, err, "query table existence")
	return exists
}

func indexExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = $1)`,
		name,
	).Scan(&exists)
	require.NoError(t, err, "query index existence")
	return exists
}

func extensionExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = $1)`,
		name,
	).Scan(&exists)
	require.NoError(t, err, "query extension existence")
	return exists
}
