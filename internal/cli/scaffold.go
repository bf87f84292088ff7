package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var (
		fieldsSpec      string
		from            string
		registryMode    string
		dryRun          bool
		printContent    bool
		typedValidation bool
		noLedger        bool
	)

	cmd := &cobra.Command{
		Use:     "generate [entity]",
		Aliases: []string{"g"},
		Short:   "Scaffold the CRUD stack for an entity",
		Long: `Generate the migration, model, controller, validation and route files for an
entity, register its routes in routes/index.js and its schema in
utils/swaggerSchemas.js.

Nothing is written if any of the five files (or an earlier migration for the
same entity) already exists.

Field types: STRING, TEXT, INTEGER, FLOAT, BOOLEAN, DATE (case-insensitive;
int, bool, float, number, time and datetime are accepted as aliases).

Examples:
  crudgen generate book --fields "title:string,pages:integer"
  crudgen generate --from definitions/book.yaml
  crudgen generate author --fields "name:string,born:date" --dry-run --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := NewContext()
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			req := primary.GenerateEntityRequest{
				Root:            GetRoot(),
				FieldsSpec:      fieldsSpec,
				DefinitionPath:  from,
				DryRun:          dryRun,
				TypedValidation: cfg.TypedValidation,
				RegistryMode:    cfg.RegistryMode,
				Record:          !cfg.DisableLedger && !noLedger,
			}
			if len(args) == 1 {
				req.EntityName = args[0]
			}
			if cmd.Flags().Changed("typed-validation") {
				req.TypedValidation = typedValidation
			}
			if cmd.Flags().Changed("registry-mode") {
				req.RegistryMode = registryMode
			}

			_, err = wire.ScaffoldAdapter().Generate(ctx, req, printContent)
			return err
		},
	}

	cmd.Flags().StringVarP(&fieldsSpec, "fields", "f", "", "Fields as name:type pairs (e.g. \"title:string,pages:integer\")")
	cmd.Flags().StringVar(&from, "from", "", "Entity definition file (.json, .yaml or .cue)")
	cmd.Flags().StringVar(&registryMode, "registry-mode", "", "Schema registry mode: accumulate or replace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&printContent, "print", false, "Print file contents (with --dry-run)")
	cmd.Flags().BoolVar(&typedValidation, "typed-validation", false, "Validate each field with a rule matching its type")
	cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Do not record this run in .crudgen/crudgen.db")

	return cmd
}
