// Package render projects a dungeon grid into a first-person view using
// column raycasting. The renderer is stateless: every call produces
// fresh buffers from its inputs and mutates nothing.
package render

import "math"

// Pose is the viewer state: a continuous position in grid coordinate
// space, a facing angle, and a field of view. The game shell mutates it
// between turns; the renderer only reads it.
type Pose struct {
	X, Y  float64
	Angle float64 // Facing, radians, kept in [0, 2π)
	FOV   float64 // Field of view, radians
}

// NewPose centers the viewer on the given tile.
func NewPose(x, y int, angle, fov float64) Pose {
	return Pose{
		X:     float64(x) + 0.5,
		Y:     float64(y) + 0.5,
		Angle: NormalizeAngle(angle),
		FOV:   fov,
	}
}

// Tile returns the grid cell the viewer currently occupies.
func (p Pose) Tile() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Turn rotates the pose by delta radians, renormalizing the angle.
func (p Pose) Turn(delta float64) Pose {
	p.Angle = NormalizeAngle(p.Angle + delta)
	return p
}

// MoveTo recenters the pose on a tile, keeping facing and FOV.
func (p Pose) MoveTo(x, y int) Pose {
	p.X = float64(x) + 0.5
	p.Y = float64(y) + 0.5
	return p
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// angleDiff returns the signed smallest difference a-b in (-π, π].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
