package world

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Chebyshev returns the Chebyshev distance to other: max(|dx|, |dy|).
// This is the square-range metric used for aggro and proximity checks.
func (p Point) Chebyshev(other Point) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Add returns the point offset by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Less orders points row-major. Used to canonicalize coordinate pairs.
func (p Point) Less(other Point) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
