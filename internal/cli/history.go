package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var entityName string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scaffold runs",
		Long: `List the scaffold runs recorded in .crudgen/crudgen.db, newest first.

Examples:
  crudgen history
  crudgen history --entity book
  crudgen history show RUN-1A2B3C4D`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := NewContext()
			defer cancel()

			_, err := wire.ScaffoldAdapter().History(ctx, GetRoot(), entityName, limit)
			return err
		},
	}

	cmd.Flags().StringVarP(&entityName, "entity", "e", "", "Only show runs for this entity")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs (0 for all)")

	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := NewContext()
			defer cancel()

			_, err := wire.ScaffoldAdapter().ShowRun(ctx, GetRoot(), args[0])
			return err
		},
	}
}
