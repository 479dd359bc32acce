package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/roster/internal/ports/secondary"
)

// ParticipantRepository implements secondary.ParticipantRepository with SQLite.
type ParticipantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new SQLite participant repository.
func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Upsert adds a participant or replaces its modes, keeping its sequence.
func (r *ParticipantRepository) Upsert(ctx context.Context, p *secondary.ParticipantRecord) error {
	modes, err := encodeModes(p.Modes)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO participants (network, channel, nick, modes) VALUES (?, ?, ?, ?)
		ON CONFLICT(network, channel, nick) DO UPDATE SET modes = excluded.modes`,
		p.Network, p.Channel, p.Nick, modes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}
	return nil
}

// Get retrieves one participant (nil, nil if absent).
func (r *ParticipantRepository) Get(ctx context.Context, network, channel, nick string) (*secondary.ParticipantRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT seq, network, channel, nick, modes, joined_at FROM participants
		WHERE network = ? AND channel = ? AND nick = ?`,
		network, channel, nick,
	)
	record, err := scanParticipant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return record, nil
}

// Delete removes a participant. Returns an error if it was absent.
func (r *ParticipantRepository) Delete(ctx context.Context, network, channel, nick string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM participants WHERE network = ? AND channel = ? AND nick = ?",
		network, channel, nick,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("participant %s not found in %s", nick, channel)
	}
	return nil
}

// ListByChannel retrieves a channel's participants in insertion order.
func (r *ParticipantRepository) ListByChannel(ctx context.Context, network, channel string) ([]*secondary.ParticipantRecord, error) {
	return r.list(ctx,
		`SELECT seq, network, channel, nick, modes, joined_at FROM participants
		WHERE network = ? AND channel = ? ORDER BY seq ASC`,
		network, channel,
	)
}

// ListByNetwork retrieves every participant on a network in insertion order.
func (r *ParticipantRepository) ListByNetwork(ctx context.Context, network string) ([]*secondary.ParticipantRecord, error) {
	return r.list(ctx,
		`SELECT seq, network, channel, nick, modes, joined_at FROM participants
		WHERE network = ? ORDER BY seq ASC`,
		network,
	)
}

// Rename changes a nick on every channel of a network.
func (r *ParticipantRepository) Rename(ctx context.Context, network, oldNick, newNick string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE participants SET nick = ? WHERE network = ? AND nick = ?",
		newNick, network, oldNick,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rename participant: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// UpdateModes replaces the stored modes of many participants in one transaction.
func (r *ParticipantRepository) UpdateModes(ctx context.Context, records []*secondary.ParticipantRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range records {
		modes, err := encodeModes(p.Modes)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE participants SET modes = ? WHERE network = ? AND channel = ? AND nick = ?",
			modes, p.Network, p.Channel, p.Nick,
		); err != nil {
			return fmt.Errorf("failed to update modes for %s: %w", p.Nick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mode updates: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.ParticipantRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*secondary.ParticipantRecord
	for rows.Next() {
		record, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, record)
	}
	return participants, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(s scanner) (*secondary.ParticipantRecord, error) {
	var (
		modes    string
		joinedAt time.Time
	)
	record := &secondary.ParticipantRecord{}
	if err := s.Scan(&record.Seq, &record.Network, &record.Channel, &record.Nick, &modes, &joinedAt); err != nil {
		return nil, err
	}
	decoded, err := decodeModes(modes)
	if err != nil {
		return nil, fmt.Errorf("participant %s: %w", record.Nick, err)
	}
	record.Modes = decoded
	record.JoinedAt = joinedAt.Format(time.RFC3339)
	return record, nil
}

// Modes are stored as a JSON array so a code round-trips byte for byte,
// whatever characters it holds.
func encodeModes(modes []string) (string, error) {
	if len(modes) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(modes)
	if err != nil {
		return "", fmt.Errorf("failed to encode modes: %w", err)
	}
	return string(data), nil
}

func decodeModes(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var modes []string
	if err := json.Unmarshal([]byte(s), &modes); err != nil {
		return nil, fmt.Errorf("failed to decode modes %q: %w", s, err)
	}
	return modes, nil
}

// Ensure ParticipantRepository implements the interface.
var _ secondary.ParticipantRepository = (*ParticipantRepository)(nil)
