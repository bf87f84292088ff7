// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/example/crudgen/internal/core/effects"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place project files are written.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	out io.Writer
}

// NewEffectExecutor creates a new DefaultEffectExecutor that prints log effects to out.
// A nil out discards them.
func NewEffectExecutor(out io.Writer) *DefaultEffectExecutor {
	if out == nil {
		out = io.Discard
	}
	return &DefaultEffectExecutor{out: out}
}

// Execute processes a slice of effects, executing each in sequence.
// It stops at the first failure; earlier effects are not rolled back.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(eff effects.FileEffect) error {
	path := filepath.Join(eff.Root, filepath.FromSlash(eff.Path))
	switch eff.Operation {
	case effects.FileMkdir:
		if err := os.MkdirAll(path, os.FileMode(eff.Mode)); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", eff.Path, err)
		}
		return nil
	case effects.FileWrite:
		if err := os.WriteFile(path, eff.Content, os.FileMode(eff.Mode)); err != nil {
			return fmt.Errorf("failed to write %s: %w", eff.Path, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	switch eff.Level {
	case effects.LevelWarn:
		fmt.Fprintf(e.out, "%s %s\n", color.New(color.FgYellow).Sprint("!"), eff.Message)
	default:
		fmt.Fprintf(e.out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), eff.Message)
	}
}
