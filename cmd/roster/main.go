package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/cli"
	"github.com/example/roster/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "roster",
		Short:   "roster - IRC channel participant lists in display order",
		Version: version.String(),
		Long: `roster tracks who is in which IRC channel and lists them the way a
client shows them: grouped by the privilege tiers the network advertises
through ISUPPORT PREFIX, then case-insensitively by nick.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.NetworkCmd())

	// Channel membership
	rootCmd.AddCommand(cli.JoinCmd())
	rootCmd.AddCommand(cli.PartCmd())
	rootCmd.AddCommand(cli.NickCmd())
	rootCmd.AddCommand(cli.ModeCmd())
	rootCmd.AddCommand(cli.NamesCmd())
	rootCmd.AddCommand(cli.LogCmd())

	// Offline tools
	rootCmd.AddCommand(cli.SortCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
