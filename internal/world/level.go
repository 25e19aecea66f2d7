package world

import "github.com/google/uuid"

// SpawnKind tags what a spawn candidate is suitable for. The generator
// offers coordinates only; what actually occupies them is the entity
// placement layer's decision.
type SpawnKind uint8

const (
	// SpawnMonster marks a candidate offered for monster placement.
	SpawnMonster SpawnKind = iota
	// SpawnItem marks a candidate offered for item placement.
	SpawnItem
)

// SpawnPoint is a coordinate the generator offers for entity placement.
type SpawnPoint struct {
	Pos  Point
	Kind SpawnKind
}

// Spawns holds the generator's placement candidates, segmented by
// suitability. Both lists are drawn from the same floor tiles; the split
// exists so placement policy can treat them independently.
type Spawns struct {
	Monsters []Point
	Items    []Point
}

// Level is one generated dungeon floor. It owns its grid exclusively:
// the grid is frozen when generation returns and replaced wholesale on
// level transition.
type Level struct {
	ID     uuid.UUID // Identity for logs and trace attributes
	Number int       // 1-based depth
	Seed   int64     // Master seed this level was derived from
	Grid   *Grid
	Entry  Point // Player start, center of the first room
	Exit   Point // The stairs-down tile
	Rooms  []Room
	Spawns Spawns
}
