// Package spatial answers geometric queries against a dungeon grid:
// ray marching, line of sight, distances, and free-tile searches. The
// renderer and monster AI both build on the single DDA stepper defined
// here, so "what the player sees" and "what a monster sees" can never
// disagree.
package spatial

import (
	"math"

	"github.com/samdwyer/deepdelve/internal/world"
)

// Side identifies which face of a tile a ray struck.
type Side uint8

const (
	// SideNone means the ray never struck anything.
	SideNone Side = iota
	// SideNorth is the top face (entered moving down the map).
	SideNorth
	// SideSouth is the bottom face.
	SideSouth
	// SideEast is the right face.
	SideEast
	// SideWest is the left face.
	SideWest
)

// Horizontal returns true for north/south faces. Renderers dim these one
// shade relative to east/west faces to give wall edges visible contrast.
func (s Side) Horizontal() bool {
	return s == SideNorth || s == SideSouth
}

// Hit is the result of marching one ray through the grid.
type Hit struct {
	Dist  float64     // Euclidean distance along the ray to the struck face
	Tile  world.Tile  // Tile kind struck
	Cell  world.Point // Grid cell struck
	Side  Side        // Face struck
	WallX float64     // Fraction [0,1) along the struck face
	Steps int         // Cell-boundary crossings performed
	Miss  bool        // True if the ray left the grid or exceeded maxRange
}

// stepper advances a ray through the grid one cell-boundary crossing at
// a time. sideX/sideY hold the ray parameter t at which the next
// vertical/horizontal gridline is crossed; each step advances along
// whichever is smaller, so no thin wall is ever skipped regardless of
// angle.
type stepper struct {
	cellX, cellY   int
	stepX, stepY   int
	sideX, sideY   float64
	deltaX, deltaY float64
	dirX, dirY     float64
	originX        float64
	originY        float64
}

func newStepper(ox, oy, dirX, dirY float64) stepper {
	s := stepper{
		cellX:   int(math.Floor(ox)),
		cellY:   int(math.Floor(oy)),
		dirX:    dirX,
		dirY:    dirY,
		originX: ox,
		originY: oy,
		deltaX:  math.Inf(1),
		deltaY:  math.Inf(1),
	}
	if dirX != 0 {
		s.deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		s.deltaY = math.Abs(1 / dirY)
	}
	if dirX < 0 {
		s.stepX = -1
		s.sideX = (ox - float64(s.cellX)) * s.deltaX
	} else {
		s.stepX = 1
		s.sideX = (float64(s.cellX) + 1 - ox) * s.deltaX
	}
	if dirY < 0 {
		s.stepY = -1
		s.sideY = (oy - float64(s.cellY)) * s.deltaY
	} else {
		s.stepY = 1
		s.sideY = (float64(s.cellY) + 1 - oy) * s.deltaY
	}
	return s
}

// advance moves into the next cell and reports whether the crossing was
// over a vertical gridline (x axis) and the ray parameter at the face.
func (s *stepper) advance() (xAxis bool, t float64) {
	if s.sideX < s.sideY {
		t = s.sideX
		s.sideX += s.deltaX
		s.cellX += s.stepX
		return true, t
	}
	t = s.sideY
	s.sideY += s.deltaY
	s.cellY += s.stepY
	return false, t
}

// hitAt builds the Hit record for the face just crossed.
func (s *stepper) hitAt(xAxis bool, tile world.Tile, steps int) Hit {
	h := Hit{Tile: tile, Cell: world.Point{X: s.cellX, Y: s.cellY}, Steps: steps}
	if xAxis {
		h.Dist = (float64(s.cellX) - s.originX + (1-float64(s.stepX))/2) / s.dirX
		wallY := s.originY + h.Dist*s.dirY
		h.WallX = wallY - math.Floor(wallY)
		if s.stepX > 0 {
			h.Side = SideWest
		} else {
			h.Side = SideEast
		}
	} else {
		h.Dist = (float64(s.cellY) - s.originY + (1-float64(s.stepY))/2) / s.dirY
		wallX := s.originX + h.Dist*s.dirX
		h.WallX = wallX - math.Floor(wallX)
		if s.stepY > 0 {
			h.Side = SideNorth
		} else {
			h.Side = SideSouth
		}
	}
	return h
}

// March casts a ray from (ox, oy) at the given angle until stop returns
// true for an entered tile, the ray leaves the grid, or maxRange is
// exceeded. The last two cases are a designed miss, not an error: a
// malformed grid degrades to a background column instead of looping.
func March(grid *world.Grid, ox, oy, angle, maxRange float64, stop func(world.Tile) bool) Hit {
	s := newStepper(ox, oy, math.Cos(angle), math.Sin(angle))

	// A ray crossing the whole map enters at most W+H cells before the
	// bounds check fires, so the loop is bounded even on a degenerate
	// all-floor grid.
	for steps := 1; ; steps++ {
		xAxis, t := s.advance()
		if t > maxRange || !grid.InBounds(s.cellX, s.cellY) {
			return Hit{Dist: math.Min(t, maxRange), Side: SideNone, Steps: steps, Miss: true}
		}
		tile := grid.At(s.cellX, s.cellY)
		if stop(tile) {
			return s.hitAt(xAxis, tile, steps)
		}
	}
}

// walkBetween steps from the center of cell a to the center of cell b
// using the same DDA rule as March, invoking visit for every cell
// entered after a, b included. Walking stops early when visit returns
// false or the path leaves the grid.
func walkBetween(grid *world.Grid, a, b world.Point, visit func(p world.Point, t world.Tile) bool) {
	if a == b {
		return
	}
	ox := float64(a.X) + 0.5
	oy := float64(a.Y) + 0.5
	dirX := float64(b.X) - float64(a.X)
	dirY := float64(b.Y) - float64(a.Y)
	norm := math.Hypot(dirX, dirY)
	s := newStepper(ox, oy, dirX/norm, dirY/norm)

	for {
		s.advance()
		p := world.Point{X: s.cellX, Y: s.cellY}
		if !grid.InBounds(p.X, p.Y) {
			return
		}
		if !visit(p, grid.At(p.X, p.Y)) {
			return
		}
		if p == b {
			return
		}
	}
}
