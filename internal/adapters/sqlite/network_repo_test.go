package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/roster/internal/adapters/sqlite"
	"github.com/example/roster/internal/ports/secondary"
)

func TestNetworkRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNetworkRepository(db)
	ctx := context.Background()

	err := repo.Upsert(ctx, &secondary.NetworkRecord{Name: "libera", Prefix: "(ov)@+"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	retrieved, err := repo.GetByName(ctx, "libera")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if retrieved.Prefix != "(ov)@+" {
		t.Errorf("expected prefix '(ov)@+', got '%s'", retrieved.Prefix)
	}
	if retrieved.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}

	// Second upsert replaces the prefix
	err = repo.Upsert(ctx, &secondary.NetworkRecord{Name: "libera", Prefix: "(qaohv)~&@%+"})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	retrieved, err = repo.GetByName(ctx, "libera")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if retrieved.Prefix != "(qaohv)~&@%+" {
		t.Errorf("expected replaced prefix, got '%s'", retrieved.Prefix)
	}
}

func TestNetworkRepository_GetByName_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNetworkRepository(db)

	got, err := repo.GetByName(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("GetByName returned error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown network, got %+v", got)
	}
}

func TestNetworkRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewNetworkRepository(db)
	ctx := context.Background()

	for _, name := range []string{"oftc", "libera", "efnet"} {
		if err := repo.Upsert(ctx, &secondary.NetworkRecord{Name: name}); err != nil {
			t.Fatalf("Upsert(%s) failed: %v", name, err)
		}
	}

	networks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(networks) != 3 {
		t.Fatalf("expected 3 networks, got %d", len(networks))
	}
	if networks[0].Name != "efnet" || networks[2].Name != "oftc" {
		t.Errorf("expected networks ordered by name, got %s..%s", networks[0].Name, networks[2].Name)
	}
}
