package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/wire"
)

// NetworkCmd returns the network command group.
func NetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage networks and their advertised PREFIX",
		Long: `Record the ISUPPORT PREFIX each network advertises.

The PREFIX token orders privilege tiers from highest to lowest, e.g.
(qaohv)~&@%+ on networks with owner, admin, op, halfop and voice.
Networks that never advertised PREFIX use the configured default_prefix.`,
	}

	cmd.AddCommand(networkSetCmd())
	cmd.AddCommand(networkShowCmd())
	cmd.AddCommand(networkListCmd())
	return cmd
}

func networkSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set [network] [prefix]",
		Short:   "Record a network's PREFIX token",
		Example: `  roster network set libera "(qaohv)~&@%+"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := checkNetwork(args[0])
			if err != nil {
				return err
			}
			return wire.RosterAdapter().SetPrefix(context.Background(), network, args[1])
		},
	}
}

func networkShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [network]",
		Short: "Show a network's precedence tiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RosterAdapter().ShowNetwork(context.Background(), args[0])
		},
	}
}

func networkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.RosterAdapter().ListNetworks(context.Background())
		},
	}
}
