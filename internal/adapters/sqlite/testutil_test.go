// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/roster/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedParticipant inserts a participant row directly.
func seedParticipant(t *testing.T, db *sql.DB, network, channel, nick string, modes ...string) {
	t.Helper()
	if modes == nil {
		modes = []string{}
	}
	encoded, err := json.Marshal(modes)
	if err != nil {
		t.Fatalf("failed to encode modes: %v", err)
	}
	_, err = db.Exec(
		"INSERT INTO participants (network, channel, nick, modes) VALUES (?, ?, ?, ?)",
		network, channel, nick, string(encoded),
	)
	if err != nil {
		t.Fatalf("failed to seed participant: %v", err)
	}
}
