// Package entity contains the pure business logic for scaffolding an entity.
// Guards, patchers and planners are pure functions; all I/O happens in the app layer.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrArtifactExists is returned when a target artifact path is already present.
var ErrArtifactExists = errors.New("artifact already exists")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed    bool
	Reason     string
	Collisions []string // colliding paths in artifact order
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if len(r.Collisions) > 0 {
		return fmt.Errorf("%w: %s", ErrArtifactExists, r.Reason)
	}
	return fmt.Errorf("%s", r.Reason)
}

// GenerateEntityContext provides pre-fetched filesystem facts for the collision guard.
type GenerateEntityContext struct {
	EntityName         string
	TargetPaths        []string        // the five artifact paths, in artifact order
	ExistingPaths      map[string]bool // probe result per target path
	ExistingMigrations []string        // migrations already generated for this entity
}

// CanGenerateEntity evaluates whether an entity's artifacts can be written.
// Rules:
// - No target artifact path may exist
// - No earlier create-migration for the same entity may exist
func CanGenerateEntity(ctx GenerateEntityContext) GuardResult {
	var collisions []string
	for i, p := range ctx.TargetPaths {
		// Earlier migrations sit at the migration position so they are reported first.
		if i == 0 {
			collisions = append(collisions, ctx.ExistingMigrations...)
		}
		if ctx.ExistingPaths[p] {
			collisions = append(collisions, p)
		}
	}

	if len(collisions) == 0 {
		return GuardResult{Allowed: true}
	}

	reason := fmt.Sprintf("file already exists: %s", collisions[0])
	if len(collisions) > 1 {
		reason += fmt.Sprintf(" (also: %s)", strings.Join(collisions[1:], ", "))
	}
	return GuardResult{
		Allowed:    false,
		Reason:     reason,
		Collisions: collisions,
	}
}
