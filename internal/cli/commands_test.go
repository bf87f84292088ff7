package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func useRoot(t *testing.T, root string) {
	t.Helper()
	prev := globalRoot
	globalRoot = root
	t.Cleanup(func() { globalRoot = prev })
}

func findSubcommand(parent *cobra.Command, name string) *cobra.Command {
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestGenerateCmdFlags(t *testing.T) {
	cmd := GenerateCmd()

	for _, name := range []string{"fields", "from", "registry-mode", "dry-run", "print", "typed-validation", "no-ledger"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("generate is missing --%s", name)
		}
	}

	if err := cmd.Args(cmd, []string{"book", "author"}); err == nil {
		t.Error("generate should reject more than one entity")
	}
}

func TestHistoryCmdStructure(t *testing.T) {
	history := HistoryCmd()

	show := findSubcommand(history, "show")
	if show == nil {
		t.Fatal("show subcommand not registered under history")
	}
	if err := show.Args(show, nil); err == nil {
		t.Error("history show should require a run ID")
	}

	limit := history.Flags().Lookup("limit")
	if limit == nil || limit.DefValue != "20" {
		t.Errorf("history --limit default = %v, want 20", limit)
	}
}

func TestConfigInit(t *testing.T) {
	root := t.TempDir()
	useRoot(t, root)

	cmd := configInitCmd()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".crudgen", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	err := cmd.RunE(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init error = %v, want already exists", err)
	}

	if err := cmd.Flags().Set("force", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestGenerateCmd_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	useRoot(t, root)

	cmd := GenerateCmd()
	cmd.SetArgs([]string{"book", "--fields", "title:string,pages:integer", "--dry-run"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate --dry-run: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries to the project root", len(entries))
	}
}

func TestGenerateCmd_InvalidFields(t *testing.T) {
	useRoot(t, t.TempDir())

	cmd := GenerateCmd()
	cmd.SetArgs([]string{"book", "--fields", "title:string,title:integer"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected duplicate field error")
	}
}
