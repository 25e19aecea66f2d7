package render

import (
	"math"

	"github.com/samdwyer/deepdelve/internal/spatial"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Config parameterizes the renderer.
type Config struct {
	Columns       int     // Number of screen columns to cast
	MaxDepth      float64 // Ray range in tiles; beyond this is background
	ShadeLevels   uint8   // Distance shading steps, 0 = nearest/brightest
	MinimapRadius int     // Half-width of the minimap window in tiles
}

// DefaultConfig returns renderer parameters matching the classic view:
// a ray per terminal column and six tiles of wall visibility.
func DefaultConfig(columns int) Config {
	return Config{
		Columns:       columns,
		MaxDepth:      12,
		ShadeLevels:   6,
		MinimapRadius: 6,
	}
}

// Renderer casts one ray per screen column and composites sprites over
// the resulting depth buffer. It holds configuration only; all frame
// state lives in the returned Frame.
type Renderer struct {
	cfg Config
}

// New creates a renderer with the given configuration.
func New(cfg Config) *Renderer {
	if cfg.Columns <= 0 {
		cfg.Columns = 80
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 12
	}
	if cfg.ShadeLevels == 0 {
		cfg.ShadeLevels = 6
	}
	return &Renderer{cfg: cfg}
}

// Frame is one rendered view: column-indexed buffers plus the sprite
// draw list and minimap snapshot. Background columns (ray misses) have
// Depth equal to MaxDepth and Kind TileFloor.
type Frame struct {
	Columns  int
	MaxDepth float64

	Depth []float64      // Perpendicular distance per column
	Shade []uint8        // Shading level per column, larger = darker
	Kind  []world.Tile   // Tile kind struck per column
	Side  []spatial.Side // Wall face struck per column
	WallX []float64      // Texture fraction along the struck face
	Miss  []bool         // True where the ray hit nothing in range

	Sprites []SpriteDraw // Draw list, ordered far to near
	Minimap Minimap
}

// WallHeight returns the column's wall height in screen rows for a
// screen of the given height: inversely proportional to perpendicular
// distance, clamped to the screen.
func (f *Frame) WallHeight(col, screenRows int) int {
	d := f.Depth[col]
	if f.Miss[col] || d <= 0 {
		return 0
	}
	h := int(float64(screenRows) / d)
	if h > screenRows {
		h = screenRows
	}
	return h
}

// Render produces a frame for the given grid, viewer pose, and visible
// entities. The grid is read-only; calling Render twice with identical
// inputs yields identical frames.
func (r *Renderer) Render(grid *world.Grid, pose Pose, entities []Entity) *Frame {
	n := r.cfg.Columns
	f := &Frame{
		Columns:  n,
		MaxDepth: r.cfg.MaxDepth,
		Depth:    make([]float64, n),
		Shade:    make([]uint8, n),
		Kind:     make([]world.Tile, n),
		Side:     make([]spatial.Side, n),
		WallX:    make([]float64, n),
		Miss:     make([]bool, n),
	}

	for c := 0; c < n; c++ {
		rayAngle := pose.Angle + (float64(c)/float64(n)-0.5)*pose.FOV
		hit := spatial.March(grid, pose.X, pose.Y, rayAngle, r.cfg.MaxDepth, world.Tile.StopsRay)

		if hit.Miss {
			f.Depth[c] = r.cfg.MaxDepth
			f.Kind[c] = world.TileFloor
			f.Side[c] = spatial.SideNone
			f.Shade[c] = r.cfg.ShadeLevels
			f.Miss[c] = true
			continue
		}

		// Perpendicular distance corrects the fisheye effect: project the
		// raw hit distance onto the facing axis.
		perp := hit.Dist * math.Cos(rayAngle-pose.Angle)
		f.Depth[c] = perp
		f.Kind[c] = hit.Tile
		f.Side[c] = hit.Side
		f.WallX[c] = hit.WallX
		f.Shade[c] = r.shadeFor(perp, hit.Side)
	}

	f.Sprites = r.projectSprites(f, pose, entities)
	f.Minimap = snapshotMinimap(grid, pose, r.cfg.MinimapRadius)
	return f
}

// shadeFor maps perpendicular distance to a shading level. Level grows
// (darkens) monotonically with distance; horizontal-side hits sit one
// level darker than vertical-side hits at the same distance, so
// perpendicular wall faces meet at a visible edge.
func (r *Renderer) shadeFor(perp float64, side spatial.Side) uint8 {
	levels := float64(r.cfg.ShadeLevels)
	level := uint8(math.Min(levels-1, perp/r.cfg.MaxDepth*levels))
	if side.Horizontal() && level < r.cfg.ShadeLevels-1 {
		level++
	}
	return level
}
