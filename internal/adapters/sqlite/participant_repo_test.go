package sqlite_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/example/roster/internal/adapters/sqlite"
	"github.com/example/roster/internal/ports/secondary"
)

func participantNicks(records []*secondary.ParticipantRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Nick
	}
	return out
}

func TestParticipantRepository_UpsertKeepsSequence(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()

	for _, nick := range []string{"JocelynD", "YaManicKill", "astorije"} {
		err := repo.Upsert(ctx, &secondary.ParticipantRecord{Network: "libera", Channel: "#thelounge", Nick: nick})
		if err != nil {
			t.Fatalf("Upsert(%s) failed: %v", nick, err)
		}
	}

	// Re-upserting updates modes without moving the participant
	err := repo.Upsert(ctx, &secondary.ParticipantRecord{
		Network: "libera", Channel: "#thelounge", Nick: "JocelynD", Modes: []string{"a", "o"},
	})
	if err != nil {
		t.Fatalf("Upsert modes failed: %v", err)
	}

	records, err := repo.ListByChannel(ctx, "libera", "#thelounge")
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if got, want := participantNicks(records), []string{"JocelynD", "YaManicKill", "astorije"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected insertion order %v, got %v", want, got)
	}
	if !reflect.DeepEqual(records[0].Modes, []string{"a", "o"}) {
		t.Errorf("expected modes [a o], got %v", records[0].Modes)
	}
	if records[1].Modes != nil {
		t.Errorf("expected no modes, got %v", records[1].Modes)
	}
}

func TestParticipantRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()
	seedParticipant(t, db, "libera", "#thelounge", "xPaw", "q")

	got, err := repo.Get(ctx, "libera", "#thelounge", "xPaw")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || !reflect.DeepEqual(got.Modes, []string{"q"}) {
		t.Fatalf("expected xPaw with [q], got %+v", got)
	}

	// Lookup is case-sensitive
	got, err = repo.Get(ctx, "libera", "#thelounge", "xpaw")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for different case, got %+v", got)
	}
}

func TestParticipantRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()
	seedParticipant(t, db, "libera", "#thelounge", "Max-P", "o")

	if err := repo.Delete(ctx, "libera", "#thelounge", "Max-P"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "libera", "#thelounge", "Max-P"); err == nil {
		t.Error("expected error deleting absent participant")
	}
}

func TestParticipantRepository_Rename(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()
	seedParticipant(t, db, "libera", "#a", "bob")
	seedParticipant(t, db, "libera", "#a", "carol")
	seedParticipant(t, db, "libera", "#b", "bob", "o")
	seedParticipant(t, db, "oftc", "#a", "bob")

	n, err := repo.Rename(ctx, "libera", "bob", "robert")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows renamed, got %d", n)
	}

	records, err := repo.ListByChannel(ctx, "libera", "#a")
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if got, want := participantNicks(records), []string{"robert", "carol"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected renamed nick to keep its position %v, got %v", want, got)
	}

	other, err := repo.Get(ctx, "oftc", "#a", "bob")
	if err != nil || other == nil {
		t.Errorf("rename leaked to another network: %v, %+v", err, other)
	}
}

func TestParticipantRepository_ListByNetworkAndUpdateModes(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()
	seedParticipant(t, db, "libera", "#a", "alice", "o")
	seedParticipant(t, db, "libera", "#b", "bob", "v")
	seedParticipant(t, db, "oftc", "#a", "carol")

	records, err := repo.ListByNetwork(ctx, "libera")
	if err != nil {
		t.Fatalf("ListByNetwork failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(records))
	}

	records[0].Modes = []string{"q", "o"}
	records[1].Modes = nil
	if err := repo.UpdateModes(ctx, records); err != nil {
		t.Fatalf("UpdateModes failed: %v", err)
	}

	alice, _ := repo.Get(ctx, "libera", "#a", "alice")
	if !reflect.DeepEqual(alice.Modes, []string{"q", "o"}) {
		t.Errorf("expected alice modes [q o], got %v", alice.Modes)
	}
	bob, _ := repo.Get(ctx, "libera", "#b", "bob")
	if bob.Modes != nil {
		t.Errorf("expected bob modes cleared, got %v", bob.Modes)
	}
}

func TestParticipantRepository_RejectsBlankNick(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)

	err := repo.Upsert(context.Background(), &secondary.ParticipantRecord{Network: "libera", Channel: "#a", Nick: "  "})
	if err == nil {
		t.Error("expected blank nick to violate the schema check")
	}
}

func TestParticipantRepository_ModesRoundTripVerbatim(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	ctx := context.Background()

	tests := []struct {
		nick  string
		modes []string
	}{
		{"comma", []string{"q,x"}},
		{"empty", []string{""}},
		{"mixed", []string{"o", "", "a,b", `"`, "[]"}},
	}
	for _, tt := range tests {
		err := repo.Upsert(ctx, &secondary.ParticipantRecord{
			Network: "libera", Channel: "#a", Nick: tt.nick, Modes: tt.modes,
		})
		if err != nil {
			t.Fatalf("Upsert(%s) failed: %v", tt.nick, err)
		}
		got, err := repo.Get(ctx, "libera", "#a", tt.nick)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", tt.nick, err)
		}
		if !reflect.DeepEqual(got.Modes, tt.modes) {
			t.Errorf("%s: modes = %q, want %q", tt.nick, got.Modes, tt.modes)
		}
	}

	// UpdateModes takes the same encoding path
	err := repo.UpdateModes(ctx, []*secondary.ParticipantRecord{
		{Network: "libera", Channel: "#a", Nick: "comma", Modes: []string{"v", "q,x"}},
	})
	if err != nil {
		t.Fatalf("UpdateModes failed: %v", err)
	}
	got, _ := repo.Get(ctx, "libera", "#a", "comma")
	if !reflect.DeepEqual(got.Modes, []string{"v", "q,x"}) {
		t.Errorf("after UpdateModes: modes = %q", got.Modes)
	}
}

func TestParticipantRepository_CorruptModes(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewParticipantRepository(db)
	if _, err := db.Exec(
		"INSERT INTO participants (network, channel, nick, modes) VALUES ('libera', '#a', 'alice', 'q,x')",
	); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Get(context.Background(), "libera", "#a", "alice"); err == nil {
		t.Error("expected undecodable modes to be reported")
	}
}
