package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/config"
	"github.com/ormkit/ormkit/cli/internal/ui"
	"github.com/ormkit/ormkit/schema"
)

// NewValidateCommand parses and validates the definition file.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the entity definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			models, err := schema.ParseFile(config.AppFs, cfg.SchemaPath)
			if err != nil {
				return fmt.Errorf("parse %s: %w", cfg.SchemaPath, err)
			}

			if errs := schema.Validate(models); len(errs) > 0 {
				ui.PrintError("%s has %d problem(s)", cfg.SchemaPath, len(errs))
				ui.PrintDiagnostics(errs)
				return fmt.Errorf("validation failed")
			}

			names := make([]string, len(models))
			for i, m := range models {
				names[i] = m.Name
			}
			ui.PrintSuccess("%s is valid", cfg.SchemaPath)
			ui.PrintList(names)
			return nil
		},
	}
}
