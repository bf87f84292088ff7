// Package db manages the SQLite run ledger kept under each project root.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// DirName is the per-project state directory.
	DirName = ".crudgen"
	// FileName is the ledger database inside DirName.
	FileName = "crudgen.db"
)

var (
	mu  sync.Mutex
	dbs = map[string]*sql.DB{}
)

// GetDB returns the ledger connection for a project root, initializing if needed.
// Connections are cached per database path for the life of the process.
func GetDB(root string) (*sql.DB, error) {
	path := GetDBPath(root)

	mu.Lock()
	defer mu.Unlock()

	if conn, ok := dbs[path]; ok {
		return conn, nil
	}

	// Ensure .crudgen directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	dbs[path] = conn
	return conn, nil
}

// Open opens the database at path and brings its schema up to date.
// Use ":memory:" for a throwaway ledger.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// Close closes every cached connection.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var firstErr error
	for path, conn := range dbs {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(dbs, path)
	}
	return firstErr
}

// GetDBPath returns the path to the ledger for a project root.
func GetDBPath(root string) string {
	return filepath.Join(root, DirName, FileName)
}
