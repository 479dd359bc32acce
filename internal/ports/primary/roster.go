package primary

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is matched (errors.Is) by lookups of unknown networks or nicks.
	ErrNotFound = errors.New("not found")

	// ErrInvalidMode is matched by requests carrying an empty mode code or
	// one with whitespace or a comma.
	ErrInvalidMode = errors.New("invalid mode code")
)

// RosterService defines the primary port for channel roster operations.
type RosterService interface {
	// SetNetworkPrefix records the PREFIX a network advertised and
	// revalidates the participants stored for that network. Symbols are
	// derived on read, so nothing is rewritten.
	SetNetworkPrefix(ctx context.Context, req SetNetworkPrefixRequest) (*Network, error)

	// GetNetwork retrieves a network by name.
	GetNetwork(ctx context.Context, name string) (*Network, error)

	// ListNetworks retrieves all known networks.
	ListNetworks(ctx context.Context) ([]*Network, error)

	// Join adds a participant to a channel, or replaces its modes if present.
	Join(ctx context.Context, req JoinRequest) (*Participant, error)

	// Part removes a participant from a channel.
	Part(ctx context.Context, req PartRequest) error

	// Rename changes a nick on every channel of a network.
	Rename(ctx context.Context, req RenameRequest) (*RenameResponse, error)

	// ChangeMode grants or revokes one privilege code.
	ChangeMode(ctx context.Context, req ChangeModeRequest) (*Participant, error)

	// Names returns a channel's participants in display order.
	Names(ctx context.Context, network, channel string) (*ChannelNames, error)

	// History returns recent roster changes on a network, newest first.
	History(ctx context.Context, network string, limit int) ([]*RosterEvent, error)
}

// SetNetworkPrefixRequest contains parameters for recording a network PREFIX.
type SetNetworkPrefixRequest struct {
	Network string
	Prefix  string // ISUPPORT value, e.g. "(qaohv)~&@%+"
}

// JoinRequest contains parameters for adding a participant.
type JoinRequest struct {
	Network string
	Channel string
	Nick    string // may carry NAMES prefixes, e.g. "@+alice"
	Modes   []string
}

// PartRequest contains parameters for removing a participant.
type PartRequest struct {
	Network string
	Channel string
	Nick    string
}

// RenameRequest contains parameters for a nick change.
type RenameRequest struct {
	Network string
	OldNick string
	NewNick string
}

// RenameResponse reports how many channels the rename touched.
type RenameResponse struct {
	Channels int
}

// ChangeModeRequest contains parameters for a single mode change.
type ChangeModeRequest struct {
	Network string
	Channel string
	Nick    string
	Code    string
	Grant   bool // true for +code, false for -code
}

// Network represents a network at the port boundary.
type Network struct {
	Name      string
	Prefix    string
	Tiers     []Tier
	UpdatedAt string
}

// Tier is one precedence table entry.
type Tier struct {
	Code   string
	Symbol string
}

// Participant represents a channel occupant at the port boundary.
type Participant struct {
	Nick     string
	Modes    []string
	Symbols  []string
	Symbol   string // primary privilege symbol
	Prefixed string
	Rank     int // -1 when unprivileged
}

// ChannelNames is a channel roster in display order.
type ChannelNames struct {
	Network      string
	Channel      string
	Prefix       string
	Participants []*Participant
}

// RosterEvent is one audited roster change.
type RosterEvent struct {
	Network   string
	Channel   string
	Nick      string
	Action    string
	Detail    string
	CreatedAt string
}
