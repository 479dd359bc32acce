package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with a demo network and channel.
// The roster mixes every privilege tier with unprivileged and punctuated nicks.
func SeedFixtures(database *sql.DB) error {
	if _, err := database.Exec(
		"INSERT INTO networks (name, prefix) VALUES (?, ?)",
		"libera", "(qaohv)~&@%+",
	); err != nil {
		return fmt.Errorf("seed networks: %w", err)
	}

	participants := []struct{ channel, nick, modes string }{
		{"#thelounge", "JocelynD", `["a","o"]`},
		{"#thelounge", "YaManicKill", `["v"]`},
		{"#thelounge", "astorije", `["h"]`},
		{"#thelounge", "xPaw", `["q"]`},
		{"#thelounge", "Max-P", `["o"]`},
		{"#thelounge", "[foo", `[]`},
		{"#thelounge", "_foo", `[]`},
		{"#thelounge", "Foo", `[]`},
		{"#thelounge-dev", "xPaw", `["o"]`},
		{"#thelounge-dev", "astorije", `[]`},
	}
	for _, p := range participants {
		if _, err := database.Exec(
			"INSERT INTO participants (network, channel, nick, modes) VALUES (?, ?, ?, ?)",
			"libera", p.channel, p.nick, p.modes,
		); err != nil {
			return fmt.Errorf("seed participants: %w", err)
		}
	}

	return nil
}
