// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// NetworkRecord represents a network as stored in persistence.
type NetworkRecord struct {
	Name      string
	Prefix    string // ISUPPORT PREFIX value; empty means no prefixes
	CreatedAt string
	UpdatedAt string
}

// NetworkRepository defines the secondary port for network persistence.
type NetworkRepository interface {
	// Upsert creates the network or replaces its prefix.
	Upsert(ctx context.Context, network *NetworkRecord) error

	// GetByName retrieves a network by name (nil, nil if unknown).
	GetByName(ctx context.Context, name string) (*NetworkRecord, error)

	// List retrieves all networks ordered by name.
	List(ctx context.Context) ([]*NetworkRecord, error)
}

// ParticipantRecord represents a channel occupant as stored in persistence.
type ParticipantRecord struct {
	Seq      int64 // insertion sequence; assigned by the store
	Network  string
	Channel  string
	Nick     string
	Modes    []string
	JoinedAt string
}

// ParticipantRepository defines the secondary port for roster persistence.
// Listings are returned in insertion order, never display order.
type ParticipantRepository interface {
	// Upsert adds a participant or replaces its modes, keeping its sequence.
	Upsert(ctx context.Context, p *ParticipantRecord) error

	// Get retrieves one participant (nil, nil if absent).
	Get(ctx context.Context, network, channel, nick string) (*ParticipantRecord, error)

	// Delete removes a participant. Returns an error if it was absent.
	Delete(ctx context.Context, network, channel, nick string) error

	// ListByChannel retrieves a channel's participants in insertion order.
	ListByChannel(ctx context.Context, network, channel string) ([]*ParticipantRecord, error)

	// ListByNetwork retrieves every participant on a network in insertion order.
	ListByNetwork(ctx context.Context, network string) ([]*ParticipantRecord, error)

	// Rename changes a nick on every channel of a network and returns the
	// number of rows touched.
	Rename(ctx context.Context, network, oldNick, newNick string) (int, error)

	// UpdateModes replaces the stored modes of many participants at once.
	UpdateModes(ctx context.Context, records []*ParticipantRecord) error
}
