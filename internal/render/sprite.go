package render

import (
	"math"
	"sort"
)

// Entity is the renderer's view of something standing in the dungeon:
// a continuous position and how to draw it. Entity lifecycle belongs to
// the game shell; the renderer only projects positions it is handed.
type Entity struct {
	X, Y  float64
	Glyph rune
	Color string // Hex color for the presentation layer
}

// SpriteDraw is one projected entity. Visible lists only the columns
// where the sprite's distance beats the wall depth buffer; a sprite
// fully behind a nearer wall has an empty Visible list and is dropped.
type SpriteDraw struct {
	Glyph     rune
	Color     string
	Dist      float64 // Perpendicular distance, for size and shading
	CenterCol int
	HalfWidth int
	Visible   []int
}

// spriteWidthScale controls apparent sprite size: at distance 1 a sprite
// spans roughly an eighth of the screen either side of its center.
const spriteWidthScale = 8.0

// projectSprites culls, projects, and depth-tests entities against the
// frame's depth buffer. The returned list is ordered far to near so the
// presenter can paint in order and let closer sprites overwrite.
func (r *Renderer) projectSprites(f *Frame, pose Pose, entities []Entity) []SpriteDraw {
	n := r.cfg.Columns
	draws := make([]SpriteDraw, 0, len(entities))

	for _, e := range entities {
		dx := e.X - pose.X
		dy := e.Y - pose.Y
		dist := math.Hypot(dx, dy)
		if dist < 0.3 || dist > r.cfg.MaxDepth {
			continue
		}

		rel := angleDiff(math.Atan2(dy, dx), pose.Angle)
		// Cull anything outside the half-FOV cone before projecting.
		if math.Abs(rel) > pose.FOV/2 {
			continue
		}

		perp := dist * math.Cos(rel)
		center := int((rel/pose.FOV + 0.5) * float64(n))
		halfWidth := int(float64(n) / (spriteWidthScale * perp))
		if halfWidth < 1 {
			halfWidth = 1
		}

		draw := SpriteDraw{
			Glyph:     e.Glyph,
			Color:     e.Color,
			Dist:      perp,
			CenterCol: center,
			HalfWidth: halfWidth,
		}
		for c := center - halfWidth; c <= center+halfWidth; c++ {
			if c < 0 || c >= n {
				continue
			}
			// A closer wall occludes the sprite on that column.
			if perp < f.Depth[c] {
				draw.Visible = append(draw.Visible, c)
			}
		}
		if len(draw.Visible) > 0 {
			draws = append(draws, draw)
		}
	}

	// Far to near: later (nearer) sprites overwrite earlier ones where
	// columns overlap.
	sort.SliceStable(draws, func(i, j int) bool {
		return draws[i].Dist > draws[j].Dist
	})
	return draws
}
