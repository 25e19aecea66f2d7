package render

import "github.com/samdwyer/deepdelve/internal/world"

// Minimap is a fixed-radius window of grid tiles centered on the
// viewer's cell. It is a direct grid read, not a raycast product: walls
// the viewer has never faced still appear.
type Minimap struct {
	Radius int
	Center world.Point
	Tiles  [][]world.Tile // (2R+1)x(2R+1), row-major, off-map reads as wall
}

// snapshotMinimap copies the window around the viewer's current cell.
func snapshotMinimap(grid *world.Grid, pose Pose, radius int) Minimap {
	cx, cy := pose.Tile()
	size := 2*radius + 1
	tiles := make([][]world.Tile, size)
	for row := 0; row < size; row++ {
		tiles[row] = make([]world.Tile, size)
		for col := 0; col < size; col++ {
			tiles[row][col] = grid.At(cx-radius+col, cy-radius+row)
		}
	}
	return Minimap{
		Radius: radius,
		Center: world.Point{X: cx, Y: cy},
		Tiles:  tiles,
	}
}
