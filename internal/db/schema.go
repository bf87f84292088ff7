package db

import "database/sql"

// SchemaSQL is the complete schema for a fresh ledger.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Tests load it
// via GetSchemaSQL() so repository code referencing a missing column fails
// with "no such column" at test time.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Scaffold runs (one row per generate invocation)
CREATE TABLE IF NOT EXISTS scaffold_runs (
	id TEXT PRIMARY KEY,
	entity_name TEXT NOT NULL,
	fields_json TEXT NOT NULL DEFAULT '[]',
	files_json TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scaffold_runs_entity ON scaffold_runs(entity_name);
CREATE INDEX IF NOT EXISTS idx_scaffold_runs_created ON scaffold_runs(created_at);
`

// InitSchema creates the schema on a fresh database, or migrates an existing one.
func InitSchema(conn *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(conn)
	}

	// Fresh install - create modern schema directly
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(conn); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
