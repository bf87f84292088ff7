// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ScaffoldRunRepository defines the secondary port for the run ledger.
type ScaffoldRunRepository interface {
	// Create persists a new run. An empty ID is assigned by the repository.
	Create(ctx context.Context, run *ScaffoldRunRecord) error

	// GetByID retrieves a run by its ID.
	GetByID(ctx context.Context, id string) (*ScaffoldRunRecord, error)

	// List retrieves runs matching the given filters, newest first.
	List(ctx context.Context, filters ScaffoldRunFilters) ([]*ScaffoldRunRecord, error)
}

// ScaffoldRunRecord represents a run as stored in persistence.
type ScaffoldRunRecord struct {
	ID         string
	EntityName string
	FieldsJSON string // [{"name":"title","type":"STRING"}]
	FilesJSON  string // ["models/book.js", ...]
	CreatedAt  string
}

// ScaffoldRunFilters contains filter options for querying runs.
type ScaffoldRunFilters struct {
	EntityName string
	Limit      int
}

// ScaffoldRunRepositoryFactory opens the ledger that belongs to a project root.
type ScaffoldRunRepositoryFactory interface {
	ForRoot(ctx context.Context, root string) (ScaffoldRunRepository, error)
}
