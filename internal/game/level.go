package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deepdelve/internal/entity"
	"github.com/samdwyer/deepdelve/internal/spatial"
	"github.com/samdwyer/deepdelve/internal/world"
)

// levelState is one populated dungeon floor: the generated level plus
// the entities the game placed on it. Replaced wholesale on descent.
type levelState struct {
	level    *world.Level
	monsters []*entity.Monster
	items    []*entity.Item
}

// buildLevel generates a floor and populates it from the spawn tables.
// Placement draws from the generator's candidate lists only; the
// expanding-ring search resolves collisions so nothing stacks.
func (g *Game) buildLevel(ctx context.Context, depth int) (*levelState, error) {
	lvl, err := g.generator.Generate(ctx, depth, g.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("build level %d: %w", depth, err)
	}

	state := &levelState{level: lvl}
	rng := rand.New(rand.NewSource(placementSeed(g.cfg.Seed, depth)))

	occupied := map[world.Point]bool{lvl.Entry: true, lvl.Exit: true}
	taken := func(p world.Point) bool { return occupied[p] }

	monsterCount := minInt(g.cfg.MaxMonsters, 2+depth)
	for _, pos := range pickCandidates(rng, lvl.Spawns.Monsters, monsterCount) {
		def := g.monsterTable.PickForLevel(rng, depth)
		if def == nil {
			continue
		}
		spot, ok := spatial.NearestPassable(lvl.Grid, pos, 3, taken)
		if !ok {
			continue
		}
		occupied[spot] = true
		state.monsters = append(state.monsters, entity.NewMonster(def, spot))
	}

	itemCount := minInt(g.cfg.MaxItems, 1+depth/2)
	for _, pos := range pickCandidates(rng, lvl.Spawns.Items, itemCount) {
		def := g.itemTable.Pick(rng)
		if def == nil {
			continue
		}
		spot, ok := spatial.NearestPassable(lvl.Grid, pos, 3, taken)
		if !ok {
			continue
		}
		occupied[spot] = true
		state.items = append(state.items, entity.NewItem(def, spot))
	}

	g.log.WithFields(logrus.Fields{
		"depth":    depth,
		"level_id": lvl.ID,
		"monsters": len(state.monsters),
		"items":    len(state.items),
	}).Info("level populated")

	return state, nil
}

// placementSeed keeps entity placement reproducible for a master seed
// without correlating with the layout seed stream.
func placementSeed(master int64, depth int) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("deepdelve:placement:%d:%d", master, depth)))
}

// pickCandidates samples up to n distinct coordinates from the
// candidate list.
func pickCandidates(rng *rand.Rand, candidates []world.Point, n int) []world.Point {
	if n > len(candidates) {
		n = len(candidates)
	}
	picked := make([]world.Point, 0, n)
	for _, idx := range rng.Perm(len(candidates))[:n] {
		picked = append(picked, candidates[idx])
	}
	return picked
}

// monsterAt returns the monster occupying a tile, or nil.
func (s *levelState) monsterAt(p world.Point) *entity.Monster {
	for _, m := range s.monsters {
		if m.Pos == p {
			return m
		}
	}
	return nil
}

// removeItemAt deletes the item on a tile, returning it if one was
// there.
func (s *levelState) removeItemAt(p world.Point) *entity.Item {
	for i, item := range s.items {
		if item.Pos == p {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return item
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
