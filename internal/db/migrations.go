package db

import (
	"database/sql"
	"fmt"
)

// Migration is one schema upgrade step.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_scaffold_runs",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "index_scaffold_runs",
		Up:      migrationV2,
	},
}

func createVersionTable(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// RunMigrations executes all pending migrations
func RunMigrations(conn *sql.DB) error {
	if err := createVersionTable(conn); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the run ledger table.
func migrationV1(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS scaffold_runs (
			id TEXT PRIMARY KEY,
			entity_name TEXT NOT NULL,
			fields_json TEXT NOT NULL DEFAULT '[]',
			files_json TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// migrationV2 adds lookup indexes for history queries.
func migrationV2(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_scaffold_runs_entity ON scaffold_runs(entity_name);
		CREATE INDEX IF NOT EXISTS idx_scaffold_runs_created ON scaffold_runs(created_at);
	`)
	return err
}
