package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/wire"
)

// LogCmd returns the log command.
func LogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent roster changes on a network",
		Long:  "Show joins, parts, nick and mode changes, and PREFIX updates (newest first, default 50)",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			return wire.RosterAdapter().History(context.Background(), network, limit)
		},
	}

	addNetworkFlag(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Number of entries to show (0 for all)")
	return cmd
}
