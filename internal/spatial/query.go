package spatial

import "github.com/samdwyer/deepdelve/internal/world"

// LineOfSight reports whether an unobstructed straight line exists
// between the centers of tiles a and b. It walks the same DDA stepping
// rule the renderer uses, failing as soon as a sight-blocking tile is
// crossed. The endpoints themselves do not block: a monster standing in
// a doorway can still be seen.
//
// The walk always runs from the row-major smaller endpoint, so the
// result is symmetric by construction even when the ray grazes a wall
// corner exactly.
func LineOfSight(grid *world.Grid, a, b world.Point) bool {
	if !grid.InBounds(a.X, a.Y) || !grid.InBounds(b.X, b.Y) {
		return false
	}
	if a == b {
		return true
	}
	if b.Less(a) {
		a, b = b, a
	}

	clear := true
	walkBetween(grid, a, b, func(p world.Point, t world.Tile) bool {
		if p == b {
			return false
		}
		if t.BlocksSight() {
			clear = false
			return false
		}
		return true
	})
	return clear
}

// Chebyshev returns max(|dx|, |dy|) between two coordinates, the metric
// for square-range proximity checks such as monster aggro radii.
func Chebyshev(a, b world.Point) int {
	return a.Chebyshev(b)
}

// NearestPassable searches outward from origin in expanding Chebyshev
// rings, up to maxRadius, and returns the first passable tile found.
// reject lets callers skip tiles that are already occupied; a nil reject
// accepts any passable tile. The boolean is false when no tile qualifies.
func NearestPassable(grid *world.Grid, origin world.Point, maxRadius int, reject func(world.Point) bool) (world.Point, bool) {
	accepts := func(p world.Point) bool {
		if !grid.IsPassable(p.X, p.Y) {
			return false
		}
		return reject == nil || !reject(p)
	}

	if accepts(origin) {
		return origin, true
	}
	for r := 1; r <= maxRadius; r++ {
		for _, p := range ringCells(origin, r) {
			if accepts(p) {
				return p, true
			}
		}
	}
	return world.Point{}, false
}

// ringCells lists the cells at exactly Chebyshev distance r from center,
// clockwise from the top-left corner. Deterministic ordering keeps
// placement reproducible for a fixed seed.
func ringCells(center world.Point, r int) []world.Point {
	cells := make([]world.Point, 0, 8*r)
	for x := center.X - r; x <= center.X+r; x++ {
		cells = append(cells, world.Point{X: x, Y: center.Y - r})
	}
	for y := center.Y - r + 1; y <= center.Y+r; y++ {
		cells = append(cells, world.Point{X: center.X + r, Y: y})
	}
	for x := center.X + r - 1; x >= center.X-r; x-- {
		cells = append(cells, world.Point{X: x, Y: center.Y + r})
	}
	for y := center.Y + r - 1; y >= center.Y-r+1; y-- {
		cells = append(cells, world.Point{X: center.X - r, Y: y})
	}
	return cells
}
