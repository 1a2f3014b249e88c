package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAvailable_Ordered(t *testing.T) {
	migrations, err := Available()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migrations), 2)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_tasks", migrations[0].Name)
	assert.NotEmpty(t, migrations[0].Down)
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))

	_, err := db.Exec(`INSERT INTO tasks (id, category, position, text) VALUES ('a', 'dated', 0, 'Essay')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, category, position, text) VALUES ('b', 'weekly', 0, 'Nope')`)
	assert.Error(t, err, "category is constrained")

	var index string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_tasks_category_position'`).Scan(&index)
	require.NoError(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	migrations, err := Available()
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemory(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "database is in a dirty state"))
	assert.True(t, strings.Contains(err.Error(), "failed migration(s): [1]"))
}

func TestRunMigrations_PreservesExistingData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO notes (value) VALUES ('original data')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(context.Background(), db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestExtractVersionAndName(t *testing.T) {
	assert.Equal(t, 12, extractVersion("000012_add_things.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
	assert.Equal(t, "add_things", extractName("000012_add_things.up.sql"))
}
