package primary

import "context"

// ScaffoldService defines the primary port for entity scaffolding.
type ScaffoldService interface {
	// GenerateEntity writes the CRUD artifacts for one entity and registers it
	// in the shared route aggregator and schema registry.
	GenerateEntity(ctx context.Context, req GenerateEntityRequest) (*GenerateEntityResponse, error)

	// ListRuns lists recorded scaffolding runs, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*ScaffoldRun, error)

	// GetRun retrieves a recorded run by ID.
	GetRun(ctx context.Context, root, runID string) (*ScaffoldRun, error)
}

// GenerateEntityRequest contains parameters for scaffolding an entity.
type GenerateEntityRequest struct {
	Root            string // project root; all output paths are relative to it
	EntityName      string // may be empty when DefinitionPath names the entity
	FieldsSpec      string // "title:string,pages:integer"
	DefinitionPath  string // optional .json/.yaml/.cue definition
	DryRun          bool
	TypedValidation bool
	RegistryMode    string // "accumulate" (default) or "replace"
	Record          bool   // store the run in the ledger; ignored for dry runs
}

// GenerateEntityResponse contains the result of scaffolding.
type GenerateEntityResponse struct {
	RunID      string // empty when the run was not recorded
	EntityName string
	Root       string
	DryRun     bool
	Files      []GeneratedFile
	Unchanged  []string // shared files that needed no edit
	Schemas    []string // registry entries after the run
	Warnings   []string
}

// GeneratedFile describes one written (or, in a dry run, planned) file.
type GeneratedFile struct {
	Path    string // relative to Root
	Action  string // "created" or "updated"
	Content string
}

// ScaffoldRun represents a recorded scaffolding run at the port boundary.
type ScaffoldRun struct {
	ID         string
	EntityName string
	Fields     []RunField
	Files      []string
	CreatedAt  string
}

// RunField is a field as recorded in a run.
type RunField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RunFilters contains filter options for listing runs.
type RunFilters struct {
	Root       string
	EntityName string
	Limit      int
}
