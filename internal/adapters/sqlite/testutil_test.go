// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/crudgen/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun inserts a run with an explicit timestamp and returns its ID.
func seedRun(t *testing.T, db *sql.DB, id, entityName, createdAt string) string {
	t.Helper()
	if id == "" {
		id = "RUN-00000001"
	}
	if entityName == "" {
		entityName = "book"
	}
	_, err := db.Exec("INSERT INTO scaffold_runs (id, entity_name, created_at) VALUES (?, ?, ?)", id, entityName, createdAt)
	if err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return id
}
