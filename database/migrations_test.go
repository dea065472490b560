package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_EmbeddedSchemaIsOrdered(t *testing.T) {
	migrations, err := loadMigrations()

	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE")
	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].Version, migrations[i-1].Version)
	}
}

func TestParseMigrationVersion(t *testing.T) {
	tests := []struct {
		filename string
		version  int64
		wantErr  bool
	}{
		{"1_init.sql", 1, false},
		{"12_add_audit_index.sql", 12, false},
		{"noversion.sql", 0, true},
		{"x_bad.sql", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, err := parseMigrationVersion(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestDatabaseFileExists(t *testing.T) {
	assert.False(t, databaseFileExists(":memory:"))
	assert.False(t, databaseFileExists("file::memory:?cache=shared"))
	assert.False(t, databaseFileExists("file:shared?mode=memory"))
	assert.False(t, databaseFileExists(filepath.Join(t.TempDir(), "absent.db")))

	path := filepath.Join(t.TempDir(), "present.db")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	assert.True(t, databaseFileExists(path))
	assert.True(t, databaseFileExists("file:"+path+"?_busy_timeout=100"))

	empty := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.False(t, databaseFileExists(empty), "an empty file still needs initialization")
}
