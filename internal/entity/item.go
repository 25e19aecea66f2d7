package entity

import (
	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Item is a pickup lying on a floor tile.
type Item struct {
	Def *gamedata.ItemDef
	Pos world.Point
}

// NewItem places an item of the given kind at a tile.
func NewItem(def *gamedata.ItemDef, pos world.Point) *Item {
	return &Item{Def: def, Pos: pos}
}

// Center returns the item's continuous position for sprite projection.
func (i *Item) Center() (float64, float64) {
	return float64(i.Pos.X) + 0.5, float64(i.Pos.Y) + 0.5
}
