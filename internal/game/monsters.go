package game

import (
	"github.com/samdwyer/deepdelve/internal/spatial"
	"github.com/samdwyer/deepdelve/internal/world"
)

// stepMonsters advances every monster one tile after a player action.
// A monster gives chase only when the player is inside its aggro radius
// AND it actually has line of sight; the sight check runs the same DDA
// the renderer uses, so a monster can never see through a wall the
// player sees as solid.
func (g *Game) stepMonsters() {
	grid := g.state.level.Grid
	px, py := g.pose.Tile()
	player := world.Point{X: px, Y: py}

	for _, m := range g.state.monsters {
		if spatial.Chebyshev(m.Pos, player) > m.Def.AggroRadius {
			continue
		}
		if !spatial.LineOfSight(grid, m.Pos, player) {
			continue
		}
		if next, ok := g.chaseStep(m.Pos, player); ok {
			m.MoveTo(next)
		}
	}
}

// chaseStep picks the 4-directional move that most reduces Chebyshev
// distance to the target, skipping blocked or occupied tiles. The
// monster stops adjacent to the player rather than entering their tile.
func (g *Game) chaseStep(from, target world.Point) (world.Point, bool) {
	grid := g.state.level.Grid

	best := from
	bestDist := from.Chebyshev(target)
	for _, delta := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		next := from.Add(delta[0], delta[1])
		if next == target {
			continue
		}
		if !grid.IsPassable(next.X, next.Y) {
			continue
		}
		if g.state.monsterAt(next) != nil {
			continue
		}
		if d := next.Chebyshev(target); d < bestDist {
			best = next
			bestDist = d
		}
	}
	if best == from {
		return from, false
	}
	return best, true
}
