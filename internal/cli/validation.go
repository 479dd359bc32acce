package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/roster/internal/wire"
)

// channelPrefixes are the RFC 2811 channel type characters.
const channelPrefixes = "#&+!"

// validateChannel checks that name looks like an IRC channel.
// Returns an error with a helpful message when the prefix was dropped.
func validateChannel(name string) error {
	if name == "" {
		return fmt.Errorf("channel name is required")
	}
	if !strings.ContainsAny(name[:1], channelPrefixes) {
		return fmt.Errorf("invalid channel '%s'. Channel names start with one of %s, e.g. #%s", name, channelPrefixes, name)
	}
	if strings.ContainsAny(name, " ,\x07") {
		return fmt.Errorf("invalid channel '%s'. Channel names cannot contain spaces, commas or ^G", name)
	}
	return nil
}

// resolveNetwork returns the --network flag, falling back to the configured
// default network.
func resolveNetwork(cmd *cobra.Command) (string, error) {
	network, _ := cmd.Flags().GetString("network")
	if network == "" {
		network = wire.Config().Network
	}
	return checkNetwork(network)
}

func checkNetwork(network string) (string, error) {
	network = strings.TrimSpace(network)
	if network == "" {
		return "", fmt.Errorf("no network given. Pass --network or set \"network\" in .roster/config.json")
	}
	return network, nil
}

// addNetworkFlag registers the shared --network flag.
func addNetworkFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("network", "n", "", "Network name (defaults to config \"network\")")
}
