// Package entity provides the things that live in a dungeon level:
// monsters and floor items. The core generator only offers spawn
// coordinates; this package owns what occupies them.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Monster is one live monster on the current level.
type Monster struct {
	ID  uuid.UUID
	Def *gamedata.MonsterDef
	Pos world.Point
}

// NewMonster places a monster of the given kind at a tile.
func NewMonster(def *gamedata.MonsterDef, pos world.Point) *Monster {
	return &Monster{
		ID:  uuid.New(),
		Def: def,
		Pos: pos,
	}
}

// MoveTo updates the monster's tile.
func (m *Monster) MoveTo(p world.Point) {
	m.Pos = p
}

// Center returns the monster's continuous position for sprite
// projection: the middle of its tile.
func (m *Monster) Center() (float64, float64) {
	return float64(m.Pos.X) + 0.5, float64(m.Pos.Y) + 0.5
}
