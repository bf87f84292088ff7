// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/example/crudgen/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.WorkspaceAdapter for a project tree on disk.
type WorkspaceAdapter struct {
	workingDir func() (string, error)
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
func NewWorkspaceAdapter() *WorkspaceAdapter {
	return &WorkspaceAdapter{workingDir: os.Getwd}
}

// ResolveRoot returns the absolute project root. Empty means the working directory.
func (a *WorkspaceAdapter) ResolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := a.workingDir()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

// FileExists checks if anything exists at path.
func (a *WorkspaceAdapter) FileExists(ctx context.Context, root, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(root, path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return true, nil
}

// ReadFile returns the content of path, reporting absence rather than failing.
func (a *WorkspaceAdapter) ReadFile(ctx context.Context, root, path string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Glob returns root-relative, slash-separated paths matching pattern.
func (a *WorkspaceAdapter) Glob(ctx context.Context, root, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(root, m)
		if err != nil {
			return nil, err
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths, nil
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
