package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/wire"
)

// TypesCmd returns the types command
func TypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Show the field type vocabulary",
		Long:  `Show how each field type is written into the migration, model, swagger schema and validation rule.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			wire.ScaffoldAdapter().Types()
		},
	}
}
