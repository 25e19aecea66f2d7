package world

// Room is an axis-aligned rectangle used during generation to carve
// floor tiles and pick spawn points. Rooms are construction scaffolding:
// they are not part of the persistent grid model.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center coordinates of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Expand returns the room grown by margin tiles on every side. Overlap
// rejection tests expanded rectangles so accepted rooms keep at least a
// one-tile wall between them.
func (r Room) Expand(margin int) Room {
	return Room{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// OnBorder returns true if (x, y) lies on the room's one-tile border
// ring, the wall band immediately surrounding the carved interior.
func (r Room) OnBorder(x, y int) bool {
	outer := r.Expand(1)
	return outer.Contains(x, y) && !r.Contains(x, y)
}
