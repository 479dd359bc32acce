package db

import "database/sql"

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(), so a column referenced by repository code
// but missing here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `go test ./internal/adapters/sqlite/...` to verify alignment
const SchemaSQL = `
-- Networks (PREFIX advertised per network)
CREATE TABLE IF NOT EXISTS networks (
	name TEXT PRIMARY KEY,
	prefix TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Participants (channel occupants in insertion order)
CREATE TABLE IF NOT EXISTS participants (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	network TEXT NOT NULL,
	channel TEXT NOT NULL,
	nick TEXT NOT NULL CHECK(length(trim(nick)) > 0),
	modes TEXT NOT NULL DEFAULT '[]', -- JSON array of codes
	joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(network, channel, nick)
);

CREATE INDEX IF NOT EXISTS idx_participants_channel ON participants(network, channel, seq);
CREATE INDEX IF NOT EXISTS idx_participants_nick ON participants(network, nick);

-- Roster events (audit log)
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
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
