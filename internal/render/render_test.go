package render

import (
	"math"
	"reflect"
	"testing"

	"github.com/samdwyer/deepdelve/internal/world"
)

func mustGrid(t *testing.T, rows []string) *world.Grid {
	t.Helper()
	g, err := world.FromRunes(rows)
	if err != nil {
		t.Fatalf("FromRunes: %v", err)
	}
	return g
}

// singleRoom returns a 10x10 grid that is one wall-bordered room.
func singleRoom(t *testing.T) *world.Grid {
	return mustGrid(t, []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	})
}

func TestRenderCentralColumnDistance(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(80))

	// Facing due east, eye exactly 3 tiles from the east wall face at x=9.
	pose := Pose{X: 6.0, Y: 5.5, Angle: 0, FOV: math.Pi / 3}
	f := r.Render(g, pose, nil)

	center := f.Columns / 2
	if f.Miss[center] {
		t.Fatal("central ray should hit the east wall")
	}
	if math.Abs(f.Depth[center]-3.0) > 1e-9 {
		t.Errorf("central depth = %f, want 3.0", f.Depth[center])
	}
	if f.Kind[center] != world.TileWall {
		t.Errorf("central kind = %v, want wall", f.Kind[center])
	}

	// A wall 1 tile away must render brighter (lower shade level) and
	// taller than one 3 tiles away.
	near := Pose{X: 8.0, Y: 5.5, Angle: 0, FOV: math.Pi / 3}
	fNear := r.Render(g, near, nil)
	if fNear.Shade[center] >= f.Shade[center] {
		t.Errorf("shade at 1 tile (%d) should be brighter than at 3 tiles (%d)",
			fNear.Shade[center], f.Shade[center])
	}
	if fNear.WallHeight(center, 24) <= f.WallHeight(center, 24) {
		t.Error("nearer wall should be taller on screen")
	}
}

func TestRenderHorizontalSidesDimmer(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(80))

	// Compare equal-distance hits on a vertical face (east wall) and a
	// horizontal face (south wall).
	east := r.Render(g, Pose{X: 6.0, Y: 5.5, Angle: 0, FOV: math.Pi / 3}, nil)
	south := r.Render(g, Pose{X: 5.5, Y: 6.0, Angle: math.Pi / 2, FOV: math.Pi / 3}, nil)

	c := east.Columns / 2
	if math.Abs(east.Depth[c]-south.Depth[c]) > 1e-9 {
		t.Fatalf("test setup: distances differ (%f vs %f)", east.Depth[c], south.Depth[c])
	}
	if south.Shade[c] != east.Shade[c]+1 {
		t.Errorf("horizontal face shade = %d, want one darker than vertical %d",
			south.Shade[c], east.Shade[c])
	}
}

func TestRenderIdempotent(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(60))
	pose := Pose{X: 3.2, Y: 4.7, Angle: 1.1, FOV: math.Pi / 3}
	entities := []Entity{
		{X: 6.5, Y: 5.5, Glyph: 'g', Color: "#00FF00"},
		{X: 7.5, Y: 3.5, Glyph: 'o', Color: "#FF0000"},
	}

	f1 := r.Render(g, pose, entities)
	f2 := r.Render(g, pose, entities)
	if !reflect.DeepEqual(f1, f2) {
		t.Error("identical inputs should produce identical frames")
	}
}

func TestRenderDegenerateGridMisses(t *testing.T) {
	// No walls anywhere: a generator invariant violation. Every column
	// must degrade to a bounded background miss.
	g := mustGrid(t, []string{
		"........",
		"........",
		"........",
		"........",
	})
	r := New(Config{Columns: 40, MaxDepth: 50, ShadeLevels: 6, MinimapRadius: 3})
	f := r.Render(g, Pose{X: 4.0, Y: 2.0, Angle: 0.7, FOV: math.Pi / 3}, nil)

	for c := 0; c < f.Columns; c++ {
		if !f.Miss[c] {
			t.Fatalf("column %d should be a miss on an all-floor grid", c)
		}
		if f.WallHeight(c, 24) != 0 {
			t.Errorf("column %d: miss should render zero-height", c)
		}
	}
}

func TestSpriteOcclusion(t *testing.T) {
	// A corridor with a crossing wall: the entity beyond the wall must
	// not draw, the one in front must.
	g := mustGrid(t, []string{
		"#########",
		"#...#...#",
		"#########",
	})
	r := New(DefaultConfig(80))
	pose := Pose{X: 1.5, Y: 1.5, Angle: 0, FOV: math.Pi / 3}

	hidden := []Entity{{X: 6.5, Y: 1.5, Glyph: 'g'}}
	f := r.Render(g, pose, hidden)
	if len(f.Sprites) != 0 {
		t.Errorf("entity behind a nearer wall should not draw, got %d sprites", len(f.Sprites))
	}

	visible := []Entity{{X: 3.5, Y: 1.5, Glyph: 'g'}}
	f = r.Render(g, pose, visible)
	if len(f.Sprites) != 1 {
		t.Fatalf("entity in front of the wall should draw, got %d sprites", len(f.Sprites))
	}
	if len(f.Sprites[0].Visible) == 0 {
		t.Error("visible sprite should cover at least one column")
	}
	for _, c := range f.Sprites[0].Visible {
		if f.Sprites[0].Dist >= f.Depth[c] {
			t.Errorf("column %d: sprite at %f not closer than wall at %f",
				c, f.Sprites[0].Dist, f.Depth[c])
		}
	}
}

func TestSpriteCullingBehindViewer(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(80))
	// Facing east; the entity sits due west, outside any half-FOV.
	pose := Pose{X: 5.5, Y: 5.5, Angle: 0, FOV: math.Pi / 3}
	f := r.Render(g, pose, []Entity{{X: 2.5, Y: 5.5, Glyph: 'g'}})
	if len(f.Sprites) != 0 {
		t.Errorf("entity behind the viewer should be culled, got %d sprites", len(f.Sprites))
	}
}

func TestSpritesSortedFarToNear(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(80))
	pose := Pose{X: 2.5, Y: 5.5, Angle: 0, FOV: math.Pi / 3}

	f := r.Render(g, pose, []Entity{
		{X: 4.5, Y: 5.5, Glyph: 'a'},
		{X: 7.5, Y: 5.5, Glyph: 'b'},
		{X: 6.5, Y: 5.5, Glyph: 'c'},
	})
	if len(f.Sprites) != 3 {
		t.Fatalf("expected 3 sprites, got %d", len(f.Sprites))
	}
	for i := 1; i < len(f.Sprites); i++ {
		if f.Sprites[i].Dist > f.Sprites[i-1].Dist {
			t.Errorf("sprites out of order: %f before %f", f.Sprites[i-1].Dist, f.Sprites[i].Dist)
		}
	}
}

func TestSpritesSameDistanceBothDraw(t *testing.T) {
	g := singleRoom(t)
	r := New(DefaultConfig(80))
	pose := Pose{X: 5.5, Y: 5.5, Angle: 0, FOV: math.Pi / 2}

	// Two entities at mirrored offsets: equal distance, different columns.
	f := r.Render(g, pose, []Entity{
		{X: 7.5, Y: 4.8, Glyph: 'a'},
		{X: 7.5, Y: 6.2, Glyph: 'b'},
	})
	if len(f.Sprites) != 2 {
		t.Fatalf("expected both equal-distance sprites to draw, got %d", len(f.Sprites))
	}
	if f.Sprites[0].CenterCol == f.Sprites[1].CenterCol {
		t.Error("mirrored entities should project to different columns")
	}
}

func TestMinimapSnapshot(t *testing.T) {
	g := singleRoom(t)
	r := New(Config{Columns: 20, MaxDepth: 12, ShadeLevels: 6, MinimapRadius: 2})
	f := r.Render(g, Pose{X: 1.5, Y: 1.5, Angle: 0, FOV: math.Pi / 3}, nil)

	m := f.Minimap
	if m.Center != (world.Point{X: 1, Y: 1}) {
		t.Errorf("minimap center = %v, want (1,1)", m.Center)
	}
	size := 2*m.Radius + 1
	if len(m.Tiles) != size || len(m.Tiles[0]) != size {
		t.Fatalf("minimap window is %dx%d, want %dx%d", len(m.Tiles), len(m.Tiles[0]), size, size)
	}
	// Off-map rows above the viewer read as wall.
	if m.Tiles[0][0] != world.TileWall {
		t.Errorf("off-map tile = %v, want wall", m.Tiles[0][0])
	}
	// The viewer's own cell is the window center, floor here.
	if m.Tiles[m.Radius][m.Radius] != world.TileFloor {
		t.Errorf("center tile = %v, want floor", m.Tiles[m.Radius][m.Radius])
	}
}

func TestNormalizeAngle(t *testing.T) {
	for _, c := range []struct{ in, want float64 }{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	} {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
