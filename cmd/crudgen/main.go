package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/cli"
	"github.com/example/crudgen/internal/db"
	"github.com/example/crudgen/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "crudgen",
		Short:   "crudgen - CRUD scaffolding for Express + Sequelize projects",
		Version: version.String(),
		Long: `crudgen generates the migration, model, controller, validation and route
files for an entity, wires its routes into routes/index.js and documents it in
utils/swaggerSchemas.js.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.TypesCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	_ = db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
