// Package cli provides CLI commands for the crudgen application.
package cli

import (
	gocontext "context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/config"
)

// globalRoot stores the --root flag for the current CLI invocation.
// Empty means the working directory.
var globalRoot string

// AddGlobalFlags registers the flags shared by every crudgen command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&globalRoot, "root", "C", "", "Project root (defaults to the current directory)")
}

// GetRoot returns the project root requested on the command line.
func GetRoot() string {
	return globalRoot
}

// NewContext creates a context that is cancelled on interrupt.
// CLI commands should use this instead of context.Background() directly.
func NewContext() (gocontext.Context, gocontext.CancelFunc) {
	return signal.NotifyContext(gocontext.Background(), os.Interrupt)
}

// loadConfig resolves the effective configuration for the project root.
func loadConfig() (*config.Config, error) {
	root := globalRoot
	if root == "" {
		root = "."
	}
	return config.Resolve(root)
}
