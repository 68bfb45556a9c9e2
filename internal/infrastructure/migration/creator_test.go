package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates an up and down file pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add billing periods table")
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_billing_periods_table.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_billing_periods_table.down.sql"))
		assert.Len(t, mf.Version, 14)

		upContent, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(upContent), "add billing periods table")

		downContent, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(downContent), "Rollback")
	})

	t.Run("creates the migrations directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "initial schema")
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces become underscores", "add users table", "add_users_table"},
		{"uppercase is lowered", "Add Users Table", "add_users_table"},
		{"mixed separators collapse", "add - users _ table", "add_users_table"},
		{"special characters are dropped", "add users! (v2)", "add_users_v2"},
		{"trailing separator is trimmed", "add users ", "add_users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists only up migration stems", func(t *testing.T) {
		dir := t.TempDir()

		for _, name := range []string{
			"20240101000000_one.up.sql",
			"20240101000000_one.down.sql",
			"20240102000000_two.up.sql",
			"20240102000000_two.down.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0o644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20240101000000_one", "20240102000000_two"}, migrations)
	})

	t.Run("missing directory yields an empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
