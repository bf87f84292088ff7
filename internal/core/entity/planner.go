package entity

import (
	"fmt"

	"github.com/example/crudgen/internal/core/effects"
	"github.com/example/crudgen/internal/scaffold"
)

// GenerateEntityPlanInput contains pre-fetched data for scaffolding one entity.
type GenerateEntityPlanInput struct {
	Root         string
	Schema       *scaffold.EntitySchema
	Artifacts    *scaffold.ArtifactSet
	Aggregator   AggregatorState
	Registry     RegistryState
	RegistryMode RegistryMode

	ModelsIndexExists  bool
	ModelsIndexContent string // rendered loader, written only when absent
	Warnings           []string
}

// GenerateEntityPlan represents the planned effects for scaffolding an entity.
type GenerateEntityPlan struct {
	EntityName     string
	Directories    []effects.FileEffect
	ArtifactWrites []effects.FileEffect
	SharedWrites   []effects.FileEffect // aggregator, models index, registry
	Logs           []effects.LogEffect

	Changes    []FileChange // one per touched or inspected file, in execution order
	Aggregator AggregatorPatch
	Registry   RegistryMerge
}

// File change actions.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionUnchanged = "unchanged"
)

// FileChange records what the plan does to one file.
type FileChange struct {
	Action string
	Path   string
}

// Effects returns all effects as a flat slice for execution.
// Order: directories, artifacts, shared files, then log lines.
func (p GenerateEntityPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.Directories)+len(p.ArtifactWrites)+len(p.SharedWrites)+len(p.Logs))
	for _, e := range p.Directories {
		result = append(result, e)
	}
	for _, e := range p.ArtifactWrites {
		result = append(result, e)
	}
	for _, e := range p.SharedWrites {
		result = append(result, e)
	}
	for _, e := range p.Logs {
		result = append(result, e)
	}
	return result
}

// WrittenPaths returns every file path the plan writes, in execution order.
func (p GenerateEntityPlan) WrittenPaths() []string {
	var paths []string
	for _, c := range p.Changes {
		if c.Action != ActionUnchanged {
			paths = append(paths, c.Path)
		}
	}
	return paths
}

// GenerateEntityPlanFor creates a plan for scaffolding an entity.
// This is a pure function - all input data must be pre-fetched.
// It fails only when the existing registry cannot be merged.
func GenerateEntityPlanFor(input GenerateEntityPlanInput) (GenerateEntityPlan, error) {
	registry, err := MergeRegistry(input.Registry, input.Schema, input.RegistryMode)
	if err != nil {
		return GenerateEntityPlan{}, err
	}
	aggregator := PatchAggregator(input.Aggregator, input.Schema.EntityName)

	plan := GenerateEntityPlan{
		EntityName: input.Schema.EntityName,
		Aggregator: aggregator,
		Registry:   registry,
	}

	// 1. Output directories
	for _, dir := range scaffold.OutputDirs {
		plan.Directories = append(plan.Directories, effects.FileEffect{
			Operation: effects.FileMkdir,
			Root:      input.Root,
			Path:      dir,
			Mode:      0755,
		})
	}

	// 2. The five artifacts
	for _, a := range input.Artifacts.Artifacts {
		plan.ArtifactWrites = append(plan.ArtifactWrites, writeEffect(input.Root, a.Path, a.Content))
		plan.record(ActionCreated, a.Path)
	}

	// 3. Route aggregator
	switch {
	case aggregator.Created:
		plan.SharedWrites = append(plan.SharedWrites, writeEffect(input.Root, scaffold.AggregatorPath, aggregator.Content))
		plan.record(ActionCreated, scaffold.AggregatorPath)
	case aggregator.Changed:
		plan.SharedWrites = append(plan.SharedWrites, writeEffect(input.Root, scaffold.AggregatorPath, aggregator.Content))
		plan.record(ActionUpdated, scaffold.AggregatorPath)
	default:
		plan.record(ActionUnchanged, scaffold.AggregatorPath)
	}

	// 4. Models loader, only if absent
	if !input.ModelsIndexExists {
		plan.SharedWrites = append(plan.SharedWrites, writeEffect(input.Root, scaffold.ModelsIndexPath, input.ModelsIndexContent))
		plan.record(ActionCreated, scaffold.ModelsIndexPath)
	}

	// 5. Schema registry
	plan.SharedWrites = append(plan.SharedWrites, writeEffect(input.Root, scaffold.RegistryPath, registry.Content))
	if input.Registry.Exists {
		plan.record(ActionUpdated, scaffold.RegistryPath)
	} else {
		plan.record(ActionCreated, scaffold.RegistryPath)
	}

	for _, w := range append(append([]string{}, input.Warnings...), aggregator.Warnings...) {
		plan.Logs = append(plan.Logs, effects.LogEffect{Level: effects.LevelWarn, Message: w})
	}

	return plan, nil
}

func writeEffect(root, path, content string) effects.FileEffect {
	return effects.FileEffect{
		Operation: effects.FileWrite,
		Root:      root,
		Path:      path,
		Content:   []byte(content),
		Mode:      0644,
	}
}

func (p *GenerateEntityPlan) record(action, path string) {
	p.Changes = append(p.Changes, FileChange{Action: action, Path: path})
	p.Logs = append(p.Logs, effects.LogEffect{
		Level:   effects.LevelInfo,
		Message: fmt.Sprintf("%s %s", action, path),
	})
}
