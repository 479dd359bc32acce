package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

const schemaVersionSQL = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_networks_and_participants",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_roster_events",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "store_modes_as_json",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the networks and participants tables
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS networks (
			name TEXT PRIMARY KEY,
			prefix TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS participants (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			network TEXT NOT NULL,
			channel TEXT NOT NULL,
			nick TEXT NOT NULL CHECK(length(trim(nick)) > 0),
			modes TEXT NOT NULL DEFAULT '',
			joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(network, channel, nick)
		);

		CREATE INDEX IF NOT EXISTS idx_participants_channel ON participants(network, channel, seq);
		CREATE INDEX IF NOT EXISTS idx_participants_nick ON participants(network, nick);
	`)
	return err
}

// migrationV2 adds the roster_events audit table
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS roster_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			network TEXT NOT NULL,
			channel TEXT,
			nick TEXT,
			action TEXT NOT NULL CHECK(action IN ('join', 'part', 'nick', 'mode', 'prefix')),
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_roster_events_network ON roster_events(network, id);
	`)
	return err
}

// migrationV3 rewrites comma-separated mode lists as JSON arrays
func migrationV3(db *sql.DB) error {
	rows, err := db.Query("SELECT seq, modes FROM participants")
	if err != nil {
		return err
	}
	updates := map[int64]string{}
	for rows.Next() {
		var (
			seq   int64
			modes string
		)
		if err := rows.Scan(&seq, &modes); err != nil {
			rows.Close()
			return err
		}
		var codes []string
		if modes != "" {
			codes = strings.Split(modes, ",")
		} else {
			codes = []string{}
		}
		data, err := json.Marshal(codes)
		if err != nil {
			rows.Close()
			return err
		}
		updates[seq] = string(data)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for seq, modes := range updates {
		if _, err := db.Exec("UPDATE participants SET modes = ? WHERE seq = ?", modes, seq); err != nil {
			return err
		}
	}
	return nil
}
