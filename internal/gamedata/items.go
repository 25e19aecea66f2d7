package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// ItemDef defines a floor item type loaded from JSON.
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	SpawnWeight int    `json:"spawnWeight"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ItemDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (d *ItemDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// itemsFile represents the structure of items.json.
type itemsFile struct {
	Items []ItemDef `json:"items"`
}

// ItemTable holds loaded item definitions and picks spawns by weighted
// probability.
type ItemTable struct {
	defs        []ItemDef
	totalWeight int
}

// LoadItemTable loads the table from the embedded items.json.
func LoadItemTable() (*ItemTable, error) {
	file, err := Load[itemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	if len(file.Items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	table := &ItemTable{defs: file.Items}
	for _, d := range file.Items {
		table.totalWeight += d.SpawnWeight
	}
	return table, nil
}

// Pick selects a random item definition weighted by SpawnWeight.
func (t *ItemTable) Pick(rng *rand.Rand) *ItemDef {
	if t.totalWeight <= 0 {
		return nil
	}
	roll := rng.Intn(t.totalWeight)
	cumulative := 0
	for i := range t.defs {
		cumulative += t.defs[i].SpawnWeight
		if roll < cumulative {
			return &t.defs[i]
		}
	}
	return &t.defs[0]
}

// Count returns the number of item types in the table.
func (t *ItemTable) Count() int {
	return len(t.defs)
}
