package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/update"
	"github.com/ormkit/ormkit/cli/internal/version"
)

// NewVersionCommand prints build metadata and checks for updates.
func NewVersionCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			fmt.Println(info.FullString())

			if check {
				return update.CheckForUpdates(info.Version)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")

	return cmd
}
