package game

import (
	"math"
	"testing"

	"github.com/samdwyer/deepdelve/internal/entity"
	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/render"
	"github.com/samdwyer/deepdelve/internal/world"
)

func testGame(t *testing.T, rows []string) *Game {
	t.Helper()
	grid, err := world.FromRunes(rows)
	if err != nil {
		t.Fatalf("FromRunes: %v", err)
	}
	return &Game{
		cfg:   Config{FOV: math.Pi / 3, MaxDepth: 12},
		state: &levelState{level: &world.Level{Grid: grid}},
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("DEEPDELVE_SEED", "")
	t.Setenv("DEEPDELVE_FOV_DEGREES", "")
	t.Setenv("DEEPDELVE_MAX_DEPTH", "")
	t.Setenv("DEEPDELVE_SPAWN_EXCLUSION", "")

	cfg := ConfigFromEnv()
	if cfg.Seed == 0 {
		t.Error("default seed should be rolled from the clock, not zero")
	}
	if cfg.FOV != math.Pi/3 {
		t.Errorf("FOV = %v, want pi/3", cfg.FOV)
	}
	if cfg.MaxDepth != 12 {
		t.Errorf("MaxDepth = %v, want 12", cfg.MaxDepth)
	}
	if cfg.SpawnExclusionRadius != 4 {
		t.Errorf("SpawnExclusionRadius = %d, want 4", cfg.SpawnExclusionRadius)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("DEEPDELVE_SEED", "42")
	t.Setenv("DEEPDELVE_FOV_DEGREES", "90")
	t.Setenv("DEEPDELVE_MAX_DEPTH", "20")
	t.Setenv("DEEPDELVE_SPAWN_EXCLUSION", "2")

	cfg := ConfigFromEnv()
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if math.Abs(cfg.FOV-math.Pi/2) > 1e-9 {
		t.Errorf("FOV = %v, want pi/2", cfg.FOV)
	}
	if cfg.MaxDepth != 20 {
		t.Errorf("MaxDepth = %v, want 20", cfg.MaxDepth)
	}
	if cfg.SpawnExclusionRadius != 2 {
		t.Errorf("SpawnExclusionRadius = %d, want 2", cfg.SpawnExclusionRadius)
	}
}

func TestConfigFromEnvRejectsMalformed(t *testing.T) {
	t.Setenv("DEEPDELVE_FOV_DEGREES", "500")
	t.Setenv("DEEPDELVE_MAX_DEPTH", "nope")

	cfg := ConfigFromEnv()
	if cfg.FOV != math.Pi/3 {
		t.Errorf("out-of-range FOV should keep the default, got %v", cfg.FOV)
	}
	if cfg.MaxDepth != 12 {
		t.Errorf("malformed depth should keep the default, got %v", cfg.MaxDepth)
	}
}

func TestChaseStepMovesToward(t *testing.T) {
	g := testGame(t, []string{
		"#########",
		"#.......#",
		"#.......#",
		"#########",
	})

	next, ok := g.chaseStep(world.Point{X: 1, Y: 1}, world.Point{X: 5, Y: 1})
	if !ok {
		t.Fatal("open corridor should allow a chase step")
	}
	if next != (world.Point{X: 2, Y: 1}) {
		t.Errorf("next = %v, want (2,1)", next)
	}
}

func TestChaseStepStopsAdjacent(t *testing.T) {
	g := testGame(t, []string{
		"#########",
		"#.......#",
		"#.......#",
		"#########",
	})

	// Diagonal adjacency: any 4-directional move either leaves Chebyshev
	// distance at 1 or would enter the target tile, so the monster holds.
	if _, ok := g.chaseStep(world.Point{X: 2, Y: 1}, world.Point{X: 3, Y: 2}); ok {
		t.Error("monster adjacent to the target should not move")
	}
}

func TestChaseStepBlockedByOccupant(t *testing.T) {
	g := testGame(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	def := &gamedata.MonsterDef{ID: "goblin", AggroRadius: 6}
	g.state.monsters = []*entity.Monster{entity.NewMonster(def, world.Point{X: 2, Y: 1})}

	if _, ok := g.chaseStep(world.Point{X: 1, Y: 1}, world.Point{X: 3, Y: 1}); ok {
		t.Error("the only path tile is occupied, monster should hold")
	}
}

func TestStepMonstersRequiresSight(t *testing.T) {
	g := testGame(t, []string{
		"#########",
		"#...#...#",
		"#...#...#",
		"#...#...#",
		"#########",
	})
	def := &gamedata.MonsterDef{ID: "goblin", AggroRadius: 10}
	hidden := entity.NewMonster(def, world.Point{X: 6, Y: 2})
	g.state.monsters = []*entity.Monster{hidden}
	g.pose = render.NewPose(2, 2, 0, math.Pi/3)

	g.stepMonsters()
	if hidden.Pos != (world.Point{X: 6, Y: 2}) {
		t.Errorf("monster without line of sight moved to %v", hidden.Pos)
	}
}

func TestStepMonstersRespectsAggroRadius(t *testing.T) {
	g := testGame(t, []string{
		"##########",
		"#........#",
		"##########",
	})
	def := &gamedata.MonsterDef{ID: "goblin", AggroRadius: 2}
	calm := entity.NewMonster(def, world.Point{X: 8, Y: 1})
	g.state.monsters = []*entity.Monster{calm}
	g.pose = render.NewPose(1, 1, 0, math.Pi/3)

	g.stepMonsters()
	if calm.Pos != (world.Point{X: 8, Y: 1}) {
		t.Errorf("monster outside its aggro radius moved to %v", calm.Pos)
	}

	close := entity.NewMonster(def, world.Point{X: 3, Y: 1})
	g.state.monsters = []*entity.Monster{close}
	g.stepMonsters()
	if close.Pos != (world.Point{X: 2, Y: 1}) {
		t.Errorf("monster inside its aggro radius should close in, got %v", close.Pos)
	}
}

func TestRemoveItemAt(t *testing.T) {
	g := testGame(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	def := &gamedata.ItemDef{ID: "potion"}
	g.state.items = []*entity.Item{entity.NewItem(def, world.Point{X: 2, Y: 1})}

	if got := g.state.removeItemAt(world.Point{X: 1, Y: 1}); got != nil {
		t.Errorf("empty tile returned item %v", got.Def.ID)
	}
	if got := g.state.removeItemAt(world.Point{X: 2, Y: 1}); got == nil || got.Def.ID != "potion" {
		t.Error("expected to remove the potion")
	}
	if len(g.state.items) != 0 {
		t.Errorf("item list should be empty, has %d", len(g.state.items))
	}
}
