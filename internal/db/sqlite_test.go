package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "migrations")
	require.NoError(t, os.MkdirAll(migrationsDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(migrationsDir, "001_items.sql"),
		[]byte(`CREATE TABLE items (id TEXT PRIMARY KEY);`),
		0o600,
	))
	require.NoError(t, os.WriteFile(filepath.Join(migrationsDir, "README"), []byte("ignored"), 0o600))

	database, err := OpenSQLite(filepath.Join(dir, "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	status, err := MigrationStatus(database, migrationsDir)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.False(t, status[0].Applied)

	require.NoError(t, RunMigrations(database, migrationsDir))
	require.NoError(t, RunMigrations(database, migrationsDir))

	status, err = MigrationStatus(database, migrationsDir)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, "001_items.sql", status[0].Name)
	assert.True(t, status[0].Applied)
	assert.NotEmpty(t, status[0].AppliedAt)

	_, err = database.Exec(`INSERT INTO items (id) VALUES ('a')`)
	assert.NoError(t, err)
}

func TestRunMigrationsMissingDir(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = RunMigrations(database, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
