package secondary

import "context"

// Roster event actions.
const (
	ActionJoin   = "join"
	ActionPart   = "part"
	ActionNick   = "nick"
	ActionMode   = "mode"
	ActionPrefix = "prefix"
)

// RosterEventRecord is one audit entry for a roster change.
type RosterEventRecord struct {
	ID        int64
	Network   string
	Channel   string // empty for network-wide events (nick, prefix)
	Nick      string
	Action    string
	Detail    string // e.g. "+o", "bob -> robert", "(ov)@+"
	CreatedAt string
}

// LogWriter defines the interface for writing roster audit entries.
type LogWriter interface {
	// LogEvent appends an audit entry.
	LogEvent(ctx context.Context, event *RosterEventRecord) error

	// ListEvents returns the most recent entries for a network, newest first.
	ListEvents(ctx context.Context, network string, limit int) ([]*RosterEventRecord, error)
}
