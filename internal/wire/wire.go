// Package wire provides dependency injection for the crudgen application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/crudgen/internal/adapters/cli"
	"github.com/example/crudgen/internal/adapters/filesystem"
	"github.com/example/crudgen/internal/adapters/sqlite"
	"github.com/example/crudgen/internal/app"
	"github.com/example/crudgen/internal/ports/primary"
)

var (
	scaffoldService primary.ScaffoldService
	once            sync.Once
)

// ScaffoldService returns the singleton ScaffoldService instance.
func ScaffoldService() primary.ScaffoldService {
	once.Do(initServices)
	return scaffoldService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Secondary adapters: project files on disk, per-project run ledger
	workspace := filesystem.NewWorkspaceAdapter()
	ledgers := sqlite.NewLedgerFactory()

	// Effect executor prints per-file progress to stdout
	executor := app.NewEffectExecutor(os.Stdout)

	scaffoldService = app.NewScaffoldService(workspace, ledgers, executor)
}

// ScaffoldAdapter returns a new ScaffoldAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ScaffoldAdapter() *cliadapter.ScaffoldAdapter {
	return ScaffoldAdapterWithOutput(os.Stdout)
}

// ScaffoldAdapterWithOutput returns a new ScaffoldAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ScaffoldAdapterWithOutput(out io.Writer) *cliadapter.ScaffoldAdapter {
	once.Do(initServices)
	return cliadapter.NewScaffoldAdapter(scaffoldService, out)
}
