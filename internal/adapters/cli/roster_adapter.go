// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/roster/internal/core/precedence"
	"github.com/example/roster/internal/core/roster"
	"github.com/example/roster/internal/ports/primary"
)

// tierColors colors a symbol by its tier; tiers past the end reuse the last color.
var tierColors = []*color.Color{
	color.New(color.FgHiRed, color.Bold),
	color.New(color.FgHiMagenta),
	color.New(color.FgGreen),
	color.New(color.FgCyan),
	color.New(color.FgYellow),
}

// RosterAdapter is a thin adapter that translates CLI operations to RosterService calls.
// It depends only on the RosterService interface, enabling easy testing with mocks.
type RosterAdapter struct {
	service primary.RosterService
	out     io.Writer
}

// NewRosterAdapter creates a new RosterAdapter with the given service.
func NewRosterAdapter(service primary.RosterService, out io.Writer) *RosterAdapter {
	return &RosterAdapter{
		service: service,
		out:     out,
	}
}

// SetPrefix records a network's PREFIX token.
func (a *RosterAdapter) SetPrefix(ctx context.Context, network, prefix string) error {
	n, err := a.service.SetNetworkPrefix(ctx, primary.SetNetworkPrefixRequest{
		Network: network,
		Prefix:  prefix,
	})
	if err != nil {
		return fmt.Errorf("failed to set prefix: %w", err)
	}

	fmt.Fprintf(a.out, "✓ %s now advertises %s (%d tiers)\n", n.Name, displayPrefix(n.Prefix), len(n.Tiers))
	return nil
}

// ShowNetwork displays a network and its precedence tiers.
func (a *RosterAdapter) ShowNetwork(ctx context.Context, name string) error {
	n, err := a.service.GetNetwork(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get network: %w", err)
	}

	fmt.Fprintf(a.out, "\nNetwork: %s\n", n.Name)
	fmt.Fprintf(a.out, "Prefix:  %s\n", displayPrefix(n.Prefix))
	if n.UpdatedAt != "" {
		fmt.Fprintf(a.out, "Updated: %s\n", n.UpdatedAt)
	}
	if len(n.Tiers) > 0 {
		fmt.Fprintf(a.out, "\n%-6s %-6s %s\n", "RANK", "CODE", "SYMBOL")
		for i, tier := range n.Tiers {
			fmt.Fprintf(a.out, "%-6d %-6s %s\n", i, tier.Code, colorSymbol(tier.Symbol, i))
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// ListNetworks lists every known network.
func (a *RosterAdapter) ListNetworks(ctx context.Context) error {
	networks, err := a.service.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	if len(networks) == 0 {
		fmt.Fprintln(a.out, "No networks found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %s\n", "NETWORK", "PREFIX")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, n := range networks {
		fmt.Fprintf(a.out, "%-20s %s\n", n.Name, displayPrefix(n.Prefix))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Join adds a participant to a channel.
func (a *RosterAdapter) Join(ctx context.Context, network, channel, nick string, modes []string) error {
	p, err := a.service.Join(ctx, primary.JoinRequest{
		Network: network,
		Channel: channel,
		Nick:    nick,
		Modes:   modes,
	})
	if err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	fmt.Fprintf(a.out, "✓ %s joined %s\n", formatParticipant(p), channel)
	return nil
}

// Part removes a participant from a channel.
func (a *RosterAdapter) Part(ctx context.Context, network, channel, nick string) error {
	if err := a.service.Part(ctx, primary.PartRequest{
		Network: network,
		Channel: channel,
		Nick:    nick,
	}); err != nil {
		return fmt.Errorf("failed to part: %w", err)
	}

	fmt.Fprintf(a.out, "✓ %s left %s\n", nick, channel)
	return nil
}

// Rename changes a nick across a network.
func (a *RosterAdapter) Rename(ctx context.Context, network, oldNick, newNick string) error {
	resp, err := a.service.Rename(ctx, primary.RenameRequest{
		Network: network,
		OldNick: oldNick,
		NewNick: newNick,
	})
	if err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	fmt.Fprintf(a.out, "✓ %s is now known as %s in %d channel(s)\n", oldNick, newNick, resp.Channels)
	return nil
}

// Mode applies a change such as "+o" or "-v".
func (a *RosterAdapter) Mode(ctx context.Context, network, channel, nick, change string) error {
	code, grant, err := ParseModeChange(change)
	if err != nil {
		return err
	}

	p, err := a.service.ChangeMode(ctx, primary.ChangeModeRequest{
		Network: network,
		Channel: channel,
		Nick:    nick,
		Code:    code,
		Grant:   grant,
	})
	if err != nil {
		return fmt.Errorf("failed to change mode: %w", err)
	}

	fmt.Fprintf(a.out, "✓ %s %s: modes [%s]\n", change, formatParticipant(p), strings.Join(p.Modes, " "))
	return nil
}

// Names prints a channel's participants in display order.
func (a *RosterAdapter) Names(ctx context.Context, network, channel string) error {
	names, err := a.service.Names(ctx, network, channel)
	if err != nil {
		return fmt.Errorf("failed to list names: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s on %s %s: %d participant(s)\n", names.Channel, names.Network,
		displayPrefix(names.Prefix), len(names.Participants))
	for _, p := range names.Participants {
		fmt.Fprintf(a.out, "  %s\n", formatParticipant(p))
	}
	fmt.Fprintln(a.out)
	return nil
}

// History prints recent roster changes on a network.
func (a *RosterAdapter) History(ctx context.Context, network string, limit int) error {
	events, err := a.service.History(ctx, network, limit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(a.out, "No roster changes recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-7s %-14s %-16s %s\n", "TIME", "ACTION", "CHANNEL", "NICK", "DETAIL")
	for _, e := range events {
		fmt.Fprintf(a.out, "%-20s %-7s %-14s %-16s %s\n", e.CreatedAt, e.Action, e.Channel, e.Nick, e.Detail)
	}
	fmt.Fprintln(a.out)
	return nil
}

// SortFixture decodes a YAML roster fixture and prints it in display order.
func (a *RosterAdapter) SortFixture(data []byte, opts ...roster.Option) error {
	fixture, err := roster.DecodeFixture(data)
	if err != nil {
		return err
	}
	r, err := fixture.Roster(opts...)
	if err != nil {
		return fmt.Errorf("failed to build roster: %w", err)
	}

	sorted := r.Sorted()
	if r.Channel() != "" {
		fmt.Fprintf(a.out, "%s %s: %d participant(s)\n", r.Channel(), displayPrefix(r.Table().String()), len(sorted))
	}
	for _, rec := range sorted {
		fmt.Fprintln(a.out, formatRecord(rec.Nick, r.Symbol(rec), r.Rank(rec)))
	}
	return nil
}

// ParseModeChange splits "+o" or "-o" into its code and direction.
func ParseModeChange(change string) (string, bool, error) {
	if len(change) < 2 || (change[0] != '+' && change[0] != '-') ||
		strings.ContainsAny(change[1:], ",+- \t") {
		return "", false, fmt.Errorf("invalid mode change %q (want +code or -code)", change)
	}
	return change[1:], change[0] == '+', nil
}

func formatParticipant(p *primary.Participant) string {
	if p.Rank < 0 {
		return p.Prefixed
	}
	return colorSymbol(p.Symbol, p.Rank) + p.Nick
}

func formatRecord(nick, symbol string, rank int) string {
	if rank == precedence.Unranked {
		return nick
	}
	return colorSymbol(symbol, rank) + nick
}

func colorSymbol(symbol string, rank int) string {
	if symbol == "" {
		return ""
	}
	if rank >= len(tierColors) {
		rank = len(tierColors) - 1
	}
	return tierColors[rank].Sprint(symbol)
}

func displayPrefix(prefix string) string {
	if prefix == "" {
		return "(none)"
	}
	return prefix
}
