package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// MonsterDef defines a monster type loaded from JSON.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#00FF00")
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency
	AggroRadius int    `json:"aggroRadius"` // Chebyshev range at which it gives chase
	MinLevel    int    `json:"minLevel"`    // Shallowest depth it appears at
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return []rune(m.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// monstersFile represents the structure of monsters.json.
type monstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// MonsterTable holds loaded monster definitions and picks spawns by
// weighted probability.
type MonsterTable struct {
	defs        []MonsterDef
	totalWeight int
}

// LoadMonsterTable loads the table from the embedded monsters.json.
func LoadMonsterTable() (*MonsterTable, error) {
	file, err := Load[monstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	if len(file.Monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	table := &MonsterTable{defs: file.Monsters}
	for _, d := range file.Monsters {
		table.totalWeight += d.SpawnWeight
	}
	return table, nil
}

// PickForLevel selects a random definition eligible at the given depth,
// weighted by SpawnWeight. Returns nil if nothing is eligible.
func (t *MonsterTable) PickForLevel(rng *rand.Rand, level int) *MonsterDef {
	total := 0
	for i := range t.defs {
		if t.defs[i].MinLevel <= level {
			total += t.defs[i].SpawnWeight
		}
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Intn(total)
	cumulative := 0
	for i := range t.defs {
		if t.defs[i].MinLevel > level {
			continue
		}
		cumulative += t.defs[i].SpawnWeight
		if roll < cumulative {
			return &t.defs[i]
		}
	}
	return nil
}

// GetByID returns the definition with the given ID, or nil if not found.
func (t *MonsterTable) GetByID(id string) *MonsterDef {
	for i := range t.defs {
		if t.defs[i].ID == id {
			return &t.defs[i]
		}
	}
	return nil
}

// Count returns the number of monster types in the table.
func (t *MonsterTable) Count() int {
	return len(t.defs)
}
