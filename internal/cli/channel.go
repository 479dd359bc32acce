package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/wire"
)

// JoinCmd returns the join command.
func JoinCmd() *cobra.Command {
	var modes []string

	cmd := &cobra.Command{
		Use:   "join [channel] [nick]",
		Short: "Add a participant to a channel",
		Long: `Add a participant to a channel, or replace the modes of one already present.

The nick may carry NAMES reply prefixes; "@+alice" joins alice holding the
op and voice codes of the network's table.`,
		Example: `  roster join -n libera "#thelounge" @xPaw
  roster join -n libera "#thelounge" astorije --mode h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			if err := validateChannel(args[0]); err != nil {
				return err
			}
			return wire.RosterAdapter().Join(context.Background(), network, args[0], args[1], modes)
		},
	}

	addNetworkFlag(cmd)
	cmd.Flags().StringSliceVarP(&modes, "mode", "m", nil, "Privilege code held (repeatable, first listed decides display)")
	return cmd
}

// PartCmd returns the part command.
func PartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "part [channel] [nick]",
		Short: "Remove a participant from a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			if err := validateChannel(args[0]); err != nil {
				return err
			}
			return wire.RosterAdapter().Part(context.Background(), network, args[0], args[1])
		},
	}

	addNetworkFlag(cmd)
	return cmd
}

// NickCmd returns the nick command.
func NickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nick [old] [new]",
		Short: "Rename a participant on every channel of a network",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			return wire.RosterAdapter().Rename(context.Background(), network, args[0], args[1])
		},
	}

	addNetworkFlag(cmd)
	return cmd
}

// ModeCmd returns the mode command.
func ModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode [channel] [nick] [+code|-code]",
		Short: "Grant or revoke a privilege code",
		Long: `Grant (+code) or revoke (-code) one privilege code.

Granted codes are kept in the network's precedence order, so the highest
code held is the one displayed.`,
		Example: `  roster mode -n libera "#thelounge" astorije +o
  roster mode -n libera "#thelounge" astorije -- -h`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			if err := validateChannel(args[0]); err != nil {
				return err
			}
			return wire.RosterAdapter().Mode(context.Background(), network, args[0], args[1], args[2])
		},
	}

	addNetworkFlag(cmd)
	return cmd
}

// NamesCmd returns the names command.
func NamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names [channel]",
		Short: "List a channel's participants in display order",
		Long: `List a channel's participants the way a client shows them: highest
privilege first, then case-insensitively by nick.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := resolveNetwork(cmd)
			if err != nil {
				return err
			}
			if err := validateChannel(args[0]); err != nil {
				return err
			}
			return wire.RosterAdapter().Names(context.Background(), network, args[0])
		},
	}

	addNetworkFlag(cmd)
	return cmd
}
