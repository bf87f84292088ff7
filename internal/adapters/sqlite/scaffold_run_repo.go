// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/crudgen/internal/db"
	"github.com/example/crudgen/internal/ports/secondary"
)

// ScaffoldRunRepository implements secondary.ScaffoldRunRepository with SQLite.
type ScaffoldRunRepository struct {
	db *sql.DB
}

// NewScaffoldRunRepository creates a new SQLite run repository.
func NewScaffoldRunRepository(db *sql.DB) *ScaffoldRunRepository {
	return &ScaffoldRunRepository{db: db}
}

// NewRunID returns a fresh ledger ID such as RUN-1A2B3C4D.
func NewRunID() string {
	return "RUN-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create persists a new run.
func (r *ScaffoldRunRepository) Create(ctx context.Context, run *secondary.ScaffoldRunRecord) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.FieldsJSON == "" {
		run.FieldsJSON = "[]"
	}
	if run.FilesJSON == "" {
		run.FilesJSON = "[]"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO scaffold_runs (id, entity_name, fields_json, files_json) VALUES (?, ?, ?, ?)",
		run.ID, run.EntityName, run.FieldsJSON, run.FilesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID.
func (r *ScaffoldRunRepository) GetByID(ctx context.Context, id string) (*secondary.ScaffoldRunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, entity_name, fields_json, files_json, created_at FROM scaffold_runs WHERE id = ?",
		id,
	)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record, nil
}

// List retrieves runs matching the given filters, newest first.
func (r *ScaffoldRunRepository) List(ctx context.Context, filters secondary.ScaffoldRunFilters) ([]*secondary.ScaffoldRunRecord, error) {
	query := "SELECT id, entity_name, fields_json, files_json, created_at FROM scaffold_runs"
	var args []any

	if filters.EntityName != "" {
		query += " WHERE entity_name = ?"
		args = append(args, filters.EntityName)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.ScaffoldRunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*secondary.ScaffoldRunRecord, error) {
	var createdAt time.Time

	record := &secondary.ScaffoldRunRecord{}
	err := row.Scan(&record.ID, &record.EntityName, &record.FieldsJSON, &record.FilesJSON, &createdAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure ScaffoldRunRepository implements the interface.
var _ secondary.ScaffoldRunRepository = (*ScaffoldRunRepository)(nil)

// LedgerFactory opens the per-project ledger under <root>/.crudgen.
type LedgerFactory struct{}

// NewLedgerFactory creates a new LedgerFactory.
func NewLedgerFactory() *LedgerFactory {
	return &LedgerFactory{}
}

// ForRoot returns a run repository backed by the ledger for root.
func (f *LedgerFactory) ForRoot(ctx context.Context, root string) (secondary.ScaffoldRunRepository, error) {
	conn, err := db.GetDB(root)
	if err != nil {
		return nil, err
	}
	return NewScaffoldRunRepository(conn), nil
}

// Ensure LedgerFactory implements the interface.
var _ secondary.ScaffoldRunRepositoryFactory = (*LedgerFactory)(nil)
