// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roster/internal/ports/secondary"
)

// NetworkRepository implements secondary.NetworkRepository with SQLite.
type NetworkRepository struct {
	db *sql.DB
}

// NewNetworkRepository creates a new SQLite network repository.
func NewNetworkRepository(db *sql.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

// Upsert creates the network or replaces its prefix.
func (r *NetworkRepository) Upsert(ctx context.Context, network *secondary.NetworkRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO networks (name, prefix) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET prefix = excluded.prefix, updated_at = CURRENT_TIMESTAMP`,
		network.Name, network.Prefix,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert network: %w", err)
	}
	return nil
}

// GetByName retrieves a network by name (nil, nil if unknown).
func (r *NetworkRepository) GetByName(ctx context.Context, name string) (*secondary.NetworkRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.NetworkRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT name, prefix, created_at, updated_at FROM networks WHERE name = ?",
		name,
	).Scan(&record.Name, &record.Prefix, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get network: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// List retrieves all networks ordered by name.
func (r *NetworkRepository) List(ctx context.Context) ([]*secondary.NetworkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, prefix, created_at, updated_at FROM networks ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	defer rows.Close()

	var networks []*secondary.NetworkRecord
	for rows.Next() {
		var (
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.NetworkRecord{}
		if err := rows.Scan(&record.Name, &record.Prefix, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan network: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)
		networks = append(networks, record)
	}

	return networks, rows.Err()
}

// Ensure NetworkRepository implements the interface.
var _ secondary.NetworkRepository = (*NetworkRepository)(nil)
