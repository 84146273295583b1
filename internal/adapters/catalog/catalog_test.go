package catalog

import (
	"testing"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

func TestAll_ReturnsCopy(t *testing.T) {
	c := New()
	all := c.All()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	all[0].Name = "mutated"
	if c.All()[0].Name == "mutated" {
		t.Error("All() must not expose the backing array")
	}
}

func TestAll_UniqueIDsAndValidCategories(t *testing.T) {
	c := New()
	seen := make(map[string]bool)
	for _, f := range c.All() {
		if seen[f.ID] {
			t.Errorf("duplicate facility id %s", f.ID)
		}
		seen[f.ID] = true
		if !f.Category.Valid() {
			t.Errorf("facility %s has unknown category %q", f.ID, f.Category)
		}
	}
}

func TestByCategory(t *testing.T) {
	c := New()
	ghats := c.ByCategory(domain.CategoryGhat)
	if len(ghats) != 3 {
		t.Fatalf("expected 3 ghats, got %d", len(ghats))
	}
	for _, g := range ghats {
		if g.Category != domain.CategoryGhat {
			t.Errorf("facility %s leaked into ghat filter", g.ID)
		}
	}
	// Insertion order preserved
	if ghats[0].ID != "ramkund" {
		t.Errorf("expected ramkund first, got %s", ghats[0].ID)
	}
}

func TestGetByID(t *testing.T) {
	c := New()
	f, ok := c.GetByID("ramkund")
	if !ok {
		t.Fatal("ramkund not found")
	}
	if f.Location.Lat != 19.9975 || f.Location.Lng != 73.7898 {
		t.Errorf("unexpected ramkund location: %+v", f.Location)
	}

	if _, ok := c.GetByID("nope"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestZoneAnchor(t *testing.T) {
	if _, ok := ZoneAnchor("Ramkund"); !ok {
		t.Error("Ramkund zone missing")
	}
	if _, ok := ZoneAnchor("Atlantis"); ok {
		t.Error("unexpected zone")
	}
	for _, z := range Zones {
		if _, ok := ZoneAnchor(z); !ok {
			t.Errorf("zone %s has no anchor", z)
		}
	}
}
