package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	cfg := Config{Path: filepath.Join(t.TempDir(), "sub", "test.db")}
	db, err := OpenAndMigrate(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"users", "registrations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	// second run has nothing to apply
	require.NoError(t, Migrate(db))
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("MUSICREG_DB_PATH", "/tmp/custom.db")
	require.Equal(t, "/tmp/custom.db", DefaultConfig().Path)

	t.Setenv("MUSICREG_DB_PATH", "")
	p := DefaultConfig().Path
	require.Equal(t, "data.db", filepath.Base(p))
	require.Equal(t, ".musicreg", filepath.Base(filepath.Dir(p)))
}
