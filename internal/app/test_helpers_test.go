package app

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/example/crudgen/internal/core/effects"
	"github.com/example/crudgen/internal/ports/secondary"
)

const testRoot = "/project"

// Ensure mockWorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*mockWorkspaceAdapter)(nil)

// mockWorkspaceAdapter is an in-memory project tree keyed by relative path.
type mockWorkspaceAdapter struct {
	files      map[string]string
	readErr    error
	resolveErr error
}

func newMockWorkspaceAdapter() *mockWorkspaceAdapter {
	return &mockWorkspaceAdapter{files: make(map[string]string)}
}

func (m *mockWorkspaceAdapter) ResolveRoot(root string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	if root == "" {
		return testRoot, nil
	}
	return root, nil
}

func (m *mockWorkspaceAdapter) FileExists(ctx context.Context, root, p string) (bool, error) {
	if _, ok := m.files[p]; ok {
		return true, nil
	}
	for name := range m.files {
		if strings.HasPrefix(name, p+"/") {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockWorkspaceAdapter) ReadFile(ctx context.Context, root, p string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	content, ok := m.files[p]
	return content, ok, nil
}

func (m *mockWorkspaceAdapter) Glob(ctx context.Context, root, pattern string) ([]string, error) {
	var matches []string
	for name := range m.files {
		if ok, _ := path.Match(pattern, name); ok {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// mockEffectExecutor records effects and applies file writes to a mock workspace.
type mockEffectExecutor struct {
	workspace       *mockWorkspaceAdapter
	executedEffects []effects.Effect
	executeErr      error
}

func newMockEffectExecutor(workspace *mockWorkspaceAdapter) *mockEffectExecutor {
	return &mockEffectExecutor{workspace: workspace}
}

func (m *mockEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	m.executedEffects = append(m.executedEffects, effs...)
	for _, e := range effs {
		if f, ok := e.(effects.FileEffect); ok && f.Operation == effects.FileWrite && m.workspace != nil {
			m.workspace.files[f.Path] = string(f.Content)
		}
	}
	return nil
}

// Ensure mockScaffoldRunRepository implements the interface
var _ secondary.ScaffoldRunRepository = (*mockScaffoldRunRepository)(nil)

// mockScaffoldRunRepository keeps runs in insertion order.
type mockScaffoldRunRepository struct {
	runs      []*secondary.ScaffoldRunRecord
	createErr error
}

func newMockScaffoldRunRepository() *mockScaffoldRunRepository {
	return &mockScaffoldRunRepository{}
}

func (m *mockScaffoldRunRepository) Create(ctx context.Context, run *secondary.ScaffoldRunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if run.ID == "" {
		run.ID = fmt.Sprintf("RUN-%08d", len(m.runs)+1)
	}
	run.CreatedAt = "2026-01-01T00:00:00Z"
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockScaffoldRunRepository) GetByID(ctx context.Context, id string) (*secondary.ScaffoldRunRecord, error) {
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("run %s not found", id)
}

func (m *mockScaffoldRunRepository) List(ctx context.Context, filters secondary.ScaffoldRunFilters) ([]*secondary.ScaffoldRunRecord, error) {
	var result []*secondary.ScaffoldRunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		r := m.runs[i]
		if filters.EntityName != "" && r.EntityName != filters.EntityName {
			continue
		}
		result = append(result, r)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

// mockLedgerFactory hands out a single shared repository.
type mockLedgerFactory struct {
	repo       *mockScaffoldRunRepository
	forRootErr error
	roots      []string
}

func newMockLedgerFactory() *mockLedgerFactory {
	return &mockLedgerFactory{repo: newMockScaffoldRunRepository()}
}

func (m *mockLedgerFactory) ForRoot(ctx context.Context, root string) (secondary.ScaffoldRunRepository, error) {
	if m.forRootErr != nil {
		return nil, m.forRootErr
	}
	m.roots = append(m.roots, root)
	return m.repo, nil
}
