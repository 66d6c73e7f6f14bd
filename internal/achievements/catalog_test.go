package achievements

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consistify/consistify-backend/internal/models"
	"github.com/consistify/consistify-backend/internal/testutil"
)

func TestDefaultsCatalog(t *testing.T) {
	c := Defaults()

	all := c.All()
	if len(all) != 4 {
		t.Fatalf("defaults len = %d, want 4", len(all))
	}
	if all[0].Name != "First Commit" || all[0].RequiredValue != 1 {
		t.Errorf("first default = %+v", all[0])
	}
	if got := c.Get("Week Warrior"); got == nil || got.RequiredValue != 7 {
		t.Errorf("Week Warrior = %+v", got)
	}
	if c.Get("nope") != nil {
		t.Errorf("unknown name returned a definition")
	}
}

func TestRegisterOverwritesByName(t *testing.T) {
	c := NewCatalog()
	c.Register(&Definition{Name: "a", RequiredValue: 1})
	c.Register(&Definition{Name: "b", RequiredValue: 2})
	c.Register(&Definition{Name: "a", RequiredValue: 5})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Name != "a" || all[0].RequiredValue != 5 {
		t.Errorf("re-registered entry = %+v, want updated in place", all[0])
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	payload := `{"achievements":[{"name":"Early Bird","description":"first commitment before 9am","icon":"sunrise","required_value":1}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.All()) != 1 || c.Get("Early Bird") == nil {
		t.Fatalf("catalog = %+v", c.All())
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("missing file loaded without error")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t, &models.Achievement{})
	catalog := Defaults()

	if err := Seed(db, catalog); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	var first models.Achievement
	db.Where("name = ?", "First Commit").First(&first)

	// Change a field and reseed: row keeps its id, fields refresh.
	catalog.Register(&Definition{Name: "First Commit", Description: "updated", Icon: "star", RequiredValue: 1})
	if err := Seed(db, catalog); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	if count != 4 {
		t.Fatalf("row count = %d, want 4", count)
	}

	var after models.Achievement
	db.Where("name = ?", "First Commit").First(&after)
	if after.ID != first.ID {
		t.Errorf("reseed changed row id")
	}
	if after.Description != "updated" {
		t.Errorf("description = %q, want updated", after.Description)
	}
}
