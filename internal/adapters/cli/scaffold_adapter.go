// Package cli contains thin adapters that translate CLI operations into service calls.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/scaffold"
)

// ScaffoldAdapter is a thin adapter that translates CLI operations to ScaffoldService calls.
// It depends only on the ScaffoldService interface, enabling easy testing with mocks.
type ScaffoldAdapter struct {
	service primary.ScaffoldService
	out     io.Writer
}

// NewScaffoldAdapter creates a new ScaffoldAdapter with the given service.
func NewScaffoldAdapter(service primary.ScaffoldService, out io.Writer) *ScaffoldAdapter {
	return &ScaffoldAdapter{
		service: service,
		out:     out,
	}
}

// Generate scaffolds an entity. Per-file progress of a real run is printed by the
// effect executor; this prints the summary, or the full plan for a dry run.
func (a *ScaffoldAdapter) Generate(ctx context.Context, req primary.GenerateEntityRequest, showContent bool) (*primary.GenerateEntityResponse, error) {
	resp, err := a.service.GenerateEntity(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.DryRun {
		a.printPlan(resp, showContent)
		return resp, nil
	}

	fmt.Fprintf(a.out, "\n✓ Scaffolded %s (%d files) in %s\n", resp.EntityName, len(resp.Files), resp.Root)
	if resp.RunID != "" {
		fmt.Fprintf(a.out, "  Run: %s\n", resp.RunID)
	}
	fmt.Fprintf(a.out, "  Schemas: %s\n", strings.Join(resp.Schemas, ", "))
	// Warnings of a real run were already printed while executing; only the late ones remain.
	for _, w := range resp.Warnings {
		if strings.HasPrefix(w, "run not recorded") {
			fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgYellow).Sprint("!"), w)
		}
	}
	return resp, nil
}

func (a *ScaffoldAdapter) printPlan(resp *primary.GenerateEntityResponse, showContent bool) {
	fmt.Fprintf(a.out, "Dry run: %s in %s (nothing written)\n\n", resp.EntityName, resp.Root)

	for _, f := range resp.Files {
		fmt.Fprintf(a.out, "  %s %s\n", actionLabel(f.Action), f.Path)
	}
	for _, p := range resp.Unchanged {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgBlue).Sprint("SKIP  "), p)
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgYellow).Sprint("!"), w)
	}

	if !showContent {
		return
	}
	for _, f := range resp.Files {
		fmt.Fprintf(a.out, "\n--- %s ---\n%s", f.Path, f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			fmt.Fprintln(a.out)
		}
	}
}

func actionLabel(action string) string {
	switch action {
	case "created":
		return color.New(color.FgGreen).Sprint("CREATE")
	case "updated":
		return color.New(color.FgYellow).Sprint("UPDATE")
	default:
		return strings.ToUpper(action)
	}
}

// History lists recorded runs with an optional entity filter.
func (a *ScaffoldAdapter) History(ctx context.Context, root, entityName string, limit int) ([]*primary.ScaffoldRun, error) {
	runs, err := a.service.ListRuns(ctx, primary.RunFilters{
		Root:       root,
		EntityName: entityName,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs recorded.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Scaffold your first entity:")
		fmt.Fprintln(a.out, "  crudgen generate book --fields title:string,pages:integer")
		return runs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tENTITY\tFIELDS\tFILES\tCREATED")
	fmt.Fprintln(w, "--\t------\t------\t-----\t-------")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.EntityName,
			len(run.Fields),
			len(run.Files),
			run.CreatedAt,
		)
	}

	w.Flush()
	return runs, nil
}

// ShowRun displays details for a single run.
func (a *ScaffoldAdapter) ShowRun(ctx context.Context, root, runID string) (*primary.ScaffoldRun, error) {
	run, err := a.service.GetRun(ctx, root, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	fmt.Fprintf(a.out, "\nRun: %s\n", run.ID)
	fmt.Fprintf(a.out, "Entity:  %s\n", run.EntityName)
	fmt.Fprintf(a.out, "Created: %s\n", run.CreatedAt)
	fmt.Fprintln(a.out, "Fields:")
	for _, f := range run.Fields {
		fmt.Fprintf(a.out, "  %s: %s\n", f.Name, f.Type)
	}
	fmt.Fprintln(a.out, "Files:")
	for _, f := range run.Files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	fmt.Fprintln(a.out)

	return run, nil
}

// Types prints how every storage type projects onto the generated artifacts.
func (a *ScaffoldAdapter) Types() {
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tMIGRATION\tMODEL\tSWAGGER\tVALIDATION")
	fmt.Fprintln(w, "----\t---------\t-----\t-------\t----------")

	for _, t := range scaffold.StorageTypes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t,
			scaffold.Project(t, scaffold.TargetMigration),
			scaffold.Project(t, scaffold.TargetModel),
			scaffold.Project(t, scaffold.TargetDocumentation),
			scaffold.Project(t, scaffold.TargetValidationRule),
		)
	}

	w.Flush()
	fmt.Fprintf(a.out, "\nUnknown types fall back to %s.\n", scaffold.DefaultStorageType)
}
