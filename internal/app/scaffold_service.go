package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	coreentity "github.com/example/crudgen/internal/core/entity"
	"github.com/example/crudgen/internal/db"
	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// ScaffoldServiceImpl implements the ScaffoldService interface.
type ScaffoldServiceImpl struct {
	workspace secondary.WorkspaceAdapter
	ledgers   secondary.ScaffoldRunRepositoryFactory
	executor  EffectExecutor
	now       func() time.Time
}

// NewScaffoldService creates a new ScaffoldService with injected dependencies.
func NewScaffoldService(
	workspace secondary.WorkspaceAdapter,
	ledgers secondary.ScaffoldRunRepositoryFactory,
	executor EffectExecutor,
) *ScaffoldServiceImpl {
	return &ScaffoldServiceImpl{
		workspace: workspace,
		ledgers:   ledgers,
		executor:  executor,
		now:       time.Now,
	}
}

// GenerateEntity scaffolds one entity.
// Nothing is written unless the collision guard passes and the plan is complete.
func (s *ScaffoldServiceImpl) GenerateEntity(ctx context.Context, req primary.GenerateEntityRequest) (*primary.GenerateEntityResponse, error) {
	// 1. Resolve project root
	root, err := s.workspace.ResolveRoot(req.Root)
	if err != nil {
		return nil, err
	}

	// 2. Build the entity schema from flags or a definition file
	schema, warnings, err := s.buildSchema(req)
	if err != nil {
		return nil, err
	}

	mode, err := coreentity.ParseRegistryMode(req.RegistryMode)
	if err != nil {
		return nil, err
	}

	// 3. Probe target paths and guard
	timestamp := s.now().UnixMilli()
	targets := scaffold.ArtifactPaths(schema.EntityName, timestamp)
	guardCtx, err := s.buildGuardContext(ctx, root, schema.EntityName, targets)
	if err != nil {
		return nil, err
	}
	if result := coreentity.CanGenerateEntity(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Render artifacts
	generator := scaffold.NewGenerator(scaffold.GenerateOptions{TypedValidation: req.TypedValidation})
	artifacts, err := generator.GenerateEntity(schema, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to render artifacts: %w", err)
	}

	// 5. Read shared files
	planInput := coreentity.GenerateEntityPlanInput{
		Root:         root,
		Schema:       schema,
		Artifacts:    artifacts,
		RegistryMode: mode,
		Warnings:     warnings,
	}
	if planInput.Aggregator.Content, planInput.Aggregator.Exists, err = s.workspace.ReadFile(ctx, root, scaffold.AggregatorPath); err != nil {
		return nil, err
	}
	if planInput.Registry.Content, planInput.Registry.Exists, err = s.workspace.ReadFile(ctx, root, scaffold.RegistryPath); err != nil {
		return nil, err
	}
	if planInput.ModelsIndexExists, err = s.workspace.FileExists(ctx, root, scaffold.ModelsIndexPath); err != nil {
		return nil, err
	}
	if !planInput.ModelsIndexExists {
		if planInput.ModelsIndexContent, err = generator.GenerateModelsIndex(); err != nil {
			return nil, fmt.Errorf("failed to render models index: %w", err)
		}
	}

	// 6. Generate plan
	plan, err := coreentity.GenerateEntityPlanFor(planInput)
	if err != nil {
		return nil, fmt.Errorf("%w (use --registry-mode replace to overwrite %s)", err, scaffold.RegistryPath)
	}

	resp := s.buildResponse(root, req.DryRun, plan, warnings)
	if req.DryRun {
		return resp, nil
	}

	// 7. Execute effects
	if err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, fmt.Errorf("failed to execute generate plan: %w", err)
	}

	// 8. Record the run; the project files are already written, so failures only warn
	if req.Record {
		runID, err := s.recordRun(ctx, root, schema, plan.WrittenPaths())
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("run not recorded: %v", err))
		}
		resp.RunID = runID
	}

	return resp, nil
}

// ListRuns lists recorded runs for a project root, newest first.
func (s *ScaffoldServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.ScaffoldRun, error) {
	repo, err := s.existingLedger(ctx, filters.Root)
	if err != nil || repo == nil {
		return nil, err
	}

	records, err := repo.List(ctx, secondary.ScaffoldRunFilters{
		EntityName: filters.EntityName,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	runs := make([]*primary.ScaffoldRun, 0, len(records))
	for _, r := range records {
		run, err := recordToRun(r)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetRun retrieves a recorded run.
func (s *ScaffoldServiceImpl) GetRun(ctx context.Context, root, runID string) (*primary.ScaffoldRun, error) {
	repo, err := s.existingLedger(ctx, root)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("run %s not found: no runs recorded", runID)
	}

	record, err := repo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return recordToRun(record)
}

func (s *ScaffoldServiceImpl) buildSchema(req primary.GenerateEntityRequest) (*scaffold.EntitySchema, []string, error) {
	name := req.EntityName
	var (
		fields   []scaffold.FieldDefinition
		warnings []string
	)

	switch {
	case req.DefinitionPath != "" && req.FieldsSpec != "":
		return nil, nil, fmt.Errorf("fields and a definition file cannot be combined")
	case req.DefinitionPath != "":
		def, err := scaffold.LoadDefinitionFile(req.DefinitionPath)
		if err != nil {
			return nil, nil, err
		}
		if name == "" {
			name = def.Entity
		} else if def.Entity != "" && def.Entity != name {
			warnings = append(warnings, fmt.Sprintf("entity %q overrides %q from %s", name, def.Entity, req.DefinitionPath))
		}
		fields = def.Fields
		warnings = append(warnings, def.Warnings...)
	default:
		parsed, parseWarnings, err := scaffold.ParseFields(req.FieldsSpec)
		if err != nil {
			return nil, nil, err
		}
		fields = parsed
		warnings = append(warnings, parseWarnings...)
	}

	schema, err := scaffold.BuildEntitySchema(name, fields)
	if err != nil {
		return nil, nil, err
	}
	return schema, warnings, nil
}

func (s *ScaffoldServiceImpl) buildGuardContext(ctx context.Context, root, entityName string, targets []string) (coreentity.GenerateEntityContext, error) {
	guardCtx := coreentity.GenerateEntityContext{
		EntityName:    entityName,
		TargetPaths:   targets,
		ExistingPaths: make(map[string]bool, len(targets)),
	}

	for _, p := range targets {
		exists, err := s.workspace.FileExists(ctx, root, p)
		if err != nil {
			return guardCtx, err
		}
		guardCtx.ExistingPaths[p] = exists
	}

	migrations, err := s.workspace.Glob(ctx, root, scaffold.MigrationGlob(entityName))
	if err != nil {
		return guardCtx, err
	}
	for _, m := range migrations {
		// The target itself is already reported through ExistingPaths.
		if m != targets[0] {
			guardCtx.ExistingMigrations = append(guardCtx.ExistingMigrations, m)
		}
	}

	return guardCtx, nil
}

func (s *ScaffoldServiceImpl) buildResponse(root string, dryRun bool, plan coreentity.GenerateEntityPlan, warnings []string) *primary.GenerateEntityResponse {
	resp := &primary.GenerateEntityResponse{
		EntityName: plan.EntityName,
		Root:       root,
		DryRun:     dryRun,
		Schemas:    plan.Registry.Entries,
		Warnings:   append(append([]string{}, warnings...), plan.Aggregator.Warnings...),
	}

	content := make(map[string][]byte)
	for _, w := range plan.ArtifactWrites {
		content[w.Path] = w.Content
	}
	for _, w := range plan.SharedWrites {
		content[w.Path] = w.Content
	}

	for _, c := range plan.Changes {
		if c.Action == coreentity.ActionUnchanged {
			resp.Unchanged = append(resp.Unchanged, c.Path)
			continue
		}
		resp.Files = append(resp.Files, primary.GeneratedFile{
			Path:    c.Path,
			Action:  c.Action,
			Content: string(content[c.Path]),
		})
	}
	return resp
}

func (s *ScaffoldServiceImpl) recordRun(ctx context.Context, root string, schema *scaffold.EntitySchema, files []string) (string, error) {
	repo, err := s.ledgers.ForRoot(ctx, root)
	if err != nil {
		return "", err
	}

	fields := make([]primary.RunField, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = primary.RunField{Name: f.Name, Type: string(f.Type)}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return "", err
	}

	record := &secondary.ScaffoldRunRecord{
		EntityName: schema.EntityName,
		FieldsJSON: string(fieldsJSON),
		FilesJSON:  string(filesJSON),
	}
	if err := repo.Create(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// existingLedger returns the ledger for root, or nil if none was ever created.
func (s *ScaffoldServiceImpl) existingLedger(ctx context.Context, root string) (secondary.ScaffoldRunRepository, error) {
	resolved, err := s.workspace.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	exists, err := s.workspace.FileExists(ctx, resolved, db.DirName+"/"+db.FileName)
	if err != nil || !exists {
		return nil, err
	}
	return s.ledgers.ForRoot(ctx, resolved)
}

func recordToRun(r *secondary.ScaffoldRunRecord) (*primary.ScaffoldRun, error) {
	run := &primary.ScaffoldRun{
		ID:         r.ID,
		EntityName: r.EntityName,
		CreatedAt:  r.CreatedAt,
	}
	if err := json.Unmarshal([]byte(r.FieldsJSON), &run.Fields); err != nil {
		return nil, fmt.Errorf("run %s has malformed fields: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.FilesJSON), &run.Files); err != nil {
		return nil, fmt.Errorf("run %s has malformed files: %w", r.ID, err)
	}
	return run, nil
}

// Ensure ScaffoldServiceImpl implements the interface
var _ primary.ScaffoldService = (*ScaffoldServiceImpl)(nil)
