package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ormkit/ormkit/cli/internal/config"
	"github.com/ormkit/ormkit/cli/internal/ui"
	"github.com/ormkit/ormkit/runtime/client"
)

// NewDBCommand groups database utilities.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	cmd.AddCommand(newDBPingCommand())
	cmd.AddCommand(newDBExecCommand())

	return cmd
}

func newDBPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			defer c.Disconnect()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			spinner, err := ui.PrintSpinner("connecting to " + c.Provider())
			if err != nil {
				return err
			}

			start := time.Now()
			if err := c.Connect(ctx); err != nil {
				spinner.Fail(err.Error())
				return fmt.Errorf("ping failed: %w", err)
			}
			spinner.Success(fmt.Sprintf("connected to %s in %s", c.Provider(), time.Since(start).Round(time.Millisecond)))
			return nil
		},
	}
}

func newDBExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>",
		Short: "Run a raw statement against the configured database",
		Long:  "Runs one statement verbatim. Values are not parameterized here; this is an operator escape hatch, not application surface.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			defer c.Disconnect()

			rows, err := c.Executor().Query(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				ui.PrintInfo("no rows")
				return nil
			}

			headers := make([]string, 0, len(rows[0]))
			for col := range rows[0] {
				headers = append(headers, col)
			}
			table := make([][]string, len(rows))
			for i, row := range rows {
				line := make([]string, len(headers))
				for j, col := range headers {
					line[j] = formatValue(row[col])
				}
				table[i] = line
			}
			ui.PrintTable(headers, table)
			return nil
		},
	}
}

func openClient() (*client.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return client.New(cfg.Provider, cfg.DatabaseURL)
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
