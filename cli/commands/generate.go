package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/config"
	"github.com/ormkit/ormkit/cli/internal/ui"
	"github.com/ormkit/ormkit/cli/internal/watch"
	"github.com/ormkit/ormkit/generator/codegen"
	"github.com/ormkit/ormkit/schema"
)

// NewGenerateCommand parses the definition file and emits Go entity code.
func NewGenerateCommand() *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate entity code from the definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			if !watchMode {
				return runGenerate(cfg)
			}

			watcher, err := watch.NewWatcher(cfg.SchemaPath, func() error {
				if err := runGenerate(cfg); err != nil {
					// Keep watching; a broken intermediate save is normal
					ui.PrintError("%v", err)
				}
				return nil
			})
			if err != nil {
				return err
			}
			defer watcher.Stop()

			ui.PrintInfo("watching %s, press Ctrl+C to stop", cfg.SchemaPath)
			if err := watcher.Start(); err != nil {
				return err
			}
			select {} // run until interrupted
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "regenerate when the definition file changes")

	return cmd
}

func runGenerate(cfg *config.Config) error {
	models, err := schema.ParseFile(config.AppFs, cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cfg.SchemaPath, err)
	}

	if errs := schema.Validate(models); len(errs) > 0 {
		ui.PrintError("%s has %d problem(s)", cfg.SchemaPath, len(errs))
		ui.PrintDiagnostics(errs)
		return fmt.Errorf("validation failed")
	}

	source := codegen.Generate(cfg.OutputPkg, models)

	if err := config.AppFs.MkdirAll(cfg.OutputPath, 0755); err != nil {
		return err
	}
	outFile := filepath.Join(cfg.OutputPath, "ormkit_gen.go")
	if err := afero.WriteFile(config.AppFs, outFile, []byte(source), 0644); err != nil {
		return err
	}

	ui.PrintSuccess("generated %s (%d models)", outFile, len(models))
	return nil
}
