package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roster/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter on the roster_events table.
type LogWriterAdapter struct {
	db *sql.DB
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(db *sql.DB) *LogWriterAdapter {
	return &LogWriterAdapter{db: db}
}

// LogEvent appends an audit entry.
func (w *LogWriterAdapter) LogEvent(ctx context.Context, event *secondary.RosterEventRecord) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO roster_events (network, channel, nick, action, detail) VALUES (?, ?, ?, ?, ?)",
		event.Network, nullString(event.Channel), nullString(event.Nick), event.Action, nullString(event.Detail),
	)
	if err != nil {
		return fmt.Errorf("failed to log roster event: %w", err)
	}
	return nil
}

// ListEvents returns the most recent entries for a network, newest first.
// A non-positive limit returns every entry.
func (w *LogWriterAdapter) ListEvents(ctx context.Context, network string, limit int) ([]*secondary.RosterEventRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := w.db.QueryContext(ctx,
		`SELECT id, network, channel, nick, action, detail, created_at FROM roster_events
		WHERE network = ? ORDER BY id DESC LIMIT ?`,
		network, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.RosterEventRecord
	for rows.Next() {
		var (
			channel, nick, detail sql.NullString
			createdAt             time.Time
		)
		record := &secondary.RosterEventRecord{}
		if err := rows.Scan(&record.ID, &record.Network, &channel, &nick, &record.Action, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster event: %w", err)
		}
		record.Channel = channel.String
		record.Nick = nick.String
		record.Detail = detail.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, record)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
