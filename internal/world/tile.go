// Package world provides the dungeon grid model and procedural generation.
package world

// Tile represents a single map cell kind. The set is closed: every
// consumer switches exhaustively over these values.
type Tile uint8

const (
	// TileWall is an impassable, sight-blocking wall.
	TileWall Tile = iota
	// TileFloor is open walkable ground.
	TileFloor
	// TileDoor is a passable doorway carved where a corridor meets a room.
	TileDoor
	// TileStairsDown is the level exit. Exactly one exists per level.
	TileStairsDown
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	switch t {
	case TileFloor, TileDoor, TileStairsDown:
		return true
	default:
		return false
	}
}

// BlocksSight returns true if the tile stops line-of-sight checks.
func (t Tile) BlocksSight() bool {
	return t == TileWall
}

// StopsRay returns true if a render ray terminates on this tile. Doors
// and stairs are passable but still terminate a ray: they are drawn as
// solid faces in the first-person view.
func (t Tile) StopsRay() bool {
	return t != TileFloor
}

// Rune returns the tile's map glyph.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return '+'
	case TileStairsDown:
		return '>'
	default:
		return '?'
	}
}

// String returns the tile name for logs and errors.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileStairsDown:
		return "stairs-down"
	default:
		return "unknown"
	}
}
