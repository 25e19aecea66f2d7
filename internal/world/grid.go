package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a coordinate outside the grid extents. It is a
// caller contract violation, never retried.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Grid is a rectangular tile map with dimensions fixed at generation
// time. It has no public setters: only the generator writes tiles, and
// only during its own construction pass. Entity positions are tracked by
// the game shell, never written into the grid.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// newGrid allocates a grid filled with walls.
func newGrid(width, height int) *Grid {
	tiles := make([]Tile, width*height)
	return &Grid{width: width, height: height, tiles: tiles}
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) lies within [0,W)×[0,H).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile at (x, y), or ErrOutOfBounds outside the extents.
func (g *Grid) Get(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return TileWall, fmt.Errorf("get (%d,%d) on %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
	}
	return g.tiles[y*g.width+x], nil
}

// At returns the tile at (x, y), clamping out-of-bounds reads to wall.
// Hot paths (raycasting, minimap) use this instead of Get.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.tiles[y*g.width+x]
}

// IsPassable returns true if (x, y) is in bounds and walkable.
func (g *Grid) IsPassable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.tiles[y*g.width+x].IsPassable()
}

// set writes a tile during generation. Unexported: the grid is frozen
// once generation returns it.
func (g *Grid) set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.width+x] = t
}

// setInterior writes a tile only if (x, y) is strictly inside the border.
// The outermost ring always stays wall so rays cannot escape the map.
func (g *Grid) setInterior(x, y int, t Tile) {
	if x <= 0 || x >= g.width-1 || y <= 0 || y >= g.height-1 {
		return
	}
	g.tiles[y*g.width+x] = t
}

// FromRunes reconstructs a grid from glyph rows, the inverse of Strings.
// This is the boundary offered to persistence: a saved level stores tile
// glyphs plus dimensions and rebuilds a grid with the same Get and
// IsPassable behavior.
func FromRunes(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty grid")
	}
	width := len([]rune(rows[0]))
	g := newGrid(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			tile, err := tileFromRune(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			g.tiles[y*width+x] = tile
		}
	}
	return g, nil
}

// Strings renders the grid as one glyph row per line.
func (g *Grid) Strings() []string {
	rows := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		runes := make([]rune, g.width)
		for x := 0; x < g.width; x++ {
			runes[x] = g.tiles[y*g.width+x].Rune()
		}
		rows[y] = string(runes)
	}
	return rows
}

func tileFromRune(r rune) (Tile, error) {
	switch r {
	case '#':
		return TileWall, nil
	case '.', ' ':
		return TileFloor, nil
	case '+':
		return TileDoor, nil
	case '>':
		return TileStairsDown, nil
	default:
		return TileWall, fmt.Errorf("unknown tile glyph %q", r)
	}
}
