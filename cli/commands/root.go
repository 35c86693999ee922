// Package commands implements the ormkit CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/version"
	"github.com/ormkit/ormkit/internal/debug"
)

var debugFlag bool

// NewRootCommand builds the ormkit root command with all subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ormkit",
		Short:   "Fluent query builder and active-record models for Go",
		Long:    "ormkit manipulates relational rows as objects: a fluent SQL builder, CRUD models with dirty tracking, and declarative relationships.",
		Version: version.Get().String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugFlag {
				debug.Init(true)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging of generated SQL")

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewDBCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
