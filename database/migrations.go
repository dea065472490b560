package database

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one versioned schema change, embedded at build time.
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// parseMigrationVersion extracts the numeric prefix from a migration
// filename, e.g. "2_grounding_data.sql" yields 2.
func parseMigrationVersion(filename string) (int64, error) {
	prefix, _, found := strings.Cut(strings.TrimSuffix(filename, ".sql"), "_")
	if !found {
		return 0, fmt.Errorf("migration filename %s has no version prefix", filename)
	}
	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("migration filename %s has a non-numeric version: %w", filename, err)
	}
	return version, nil
}

// loadMigrations reads the embedded migration files, sorted by version. A
// version collision is an error so a bad merge cannot apply two conflicting
// migrations under the same number.
func loadMigrations() ([]Migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	byVersion := make(map[int64]string, len(entries))
	for _, entry := range entries {
		// Only migrations/*.sql is embedded, but guard against strays.
		if !strings.HasSuffix(entry.Name(), ".sql") {
			return nil, fmt.Errorf("unexpected file in migrations directory: %s", entry.Name())
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(entry.Name(), ".sql")
		if prev, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, name)
		}
		byVersion[version] = name

		content, err := migrationFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (d *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := d.writeDB.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (d *Database) appliedMigrationVersions() (map[int64]bool, error) {
	rows, err := d.readDB.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// applyMigration runs one migration and records it, atomically: the schema
// change and its schema_migrations row commit together or not at all.
func (d *Database) applyMigration(migration Migration) error {
	d.logger.Database("Applying schema migration",
		"version", migration.Version,
		"name", migration.Name)

	tx, err := d.writeDB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Name, err)
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version, migration.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return tx.Commit()
}

// runMigrations brings the schema up to date by applying every embedded
// migration not yet recorded in schema_migrations.
func (d *Database) runMigrations() error {
	if err := d.createMigrationsTable(); err != nil {
		return err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		d.logger.Database("No schema migrations embedded")
		return nil
	}

	applied, err := d.appliedMigrationVersions()
	if err != nil {
		return err
	}

	pending := 0
	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := d.applyMigration(migration); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		pending++
	}

	if pending > 0 {
		d.logger.Database("Schema migrations applied",
			"applied", pending,
			"total", len(migrations))
	} else {
		d.logger.Database("Schema already up to date",
			"total_migrations", len(migrations))
	}
	return nil
}

// databaseFileExists reports whether the configured database already has
// content on disk. Memory databases never pre-exist; file: DSNs are reduced
// to their path component first.
func databaseFileExists(path string) bool {
	if strings.Contains(path, "mode=memory") {
		return false
	}
	path = strings.TrimPrefix(path, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if path == "" || path == ":memory:" {
		return false
	}

	stat, err := os.Stat(path)
	return err == nil && stat.Size() > 0
}
