package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadMonsterTable(t *testing.T) {
	table, err := LoadMonsterTable()
	if err != nil {
		t.Fatalf("LoadMonsterTable: %v", err)
	}

	if table.Count() != 4 {
		t.Errorf("expected 4 monster types, got %d", table.Count())
	}

	goblin := table.GetByID("goblin")
	if goblin == nil {
		t.Fatal("goblin not found by ID")
	}
	if goblin.Name != "Goblin" {
		t.Errorf("expected name 'Goblin', got %q", goblin.Name)
	}
	if goblin.GlyphRune() != 'g' {
		t.Errorf("expected glyph 'g', got %q", goblin.GlyphRune())
	}
	if goblin.AggroRadius <= 0 {
		t.Error("goblin should have a positive aggro radius")
	}

	if table.GetByID("beholder") != nil {
		t.Error("unknown ID should return nil")
	}
}

func TestPickForLevelRespectsMinLevel(t *testing.T) {
	table, err := LoadMonsterTable()
	if err != nil {
		t.Fatalf("LoadMonsterTable: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		def := table.PickForLevel(rng, 1)
		if def == nil {
			t.Fatal("level 1 should always have eligible monsters")
		}
		if def.MinLevel > 1 {
			t.Fatalf("picked %q with minLevel %d on level 1", def.ID, def.MinLevel)
		}
	}

	// Deep levels may pick anything.
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		if def := table.PickForLevel(rng, 10); def != nil {
			seen[def.ID] = true
		}
	}
	if !seen["wraith"] {
		t.Error("deep levels should eventually spawn wraiths")
	}
}

func TestLoadItemTable(t *testing.T) {
	table, err := LoadItemTable()
	if err != nil {
		t.Fatalf("LoadItemTable: %v", err)
	}
	if table.Count() != 4 {
		t.Errorf("expected 4 item types, got %d", table.Count())
	}

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		if table.Pick(rng) == nil {
			t.Fatal("Pick should never return nil for a non-empty table")
		}
	}
}

func TestParseHexColor(t *testing.T) {
	if _, err := ParseHexColor("#FF00AA"); err != nil {
		t.Errorf("valid color rejected: %v", err)
	}
	if _, err := ParseHexColor("FF00AA"); err != nil {
		t.Errorf("bare hex rejected: %v", err)
	}
	if _, err := ParseHexColor("#XYZ"); err == nil {
		t.Error("invalid color accepted")
	}
}
