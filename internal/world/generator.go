package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepdelve/internal/logging"
	"github.com/samdwyer/deepdelve/internal/telemetry"
)

const (
	// DefaultWidth and DefaultHeight match the classic 80x24 terminal map.
	DefaultWidth  = 80
	DefaultHeight = 24

	// Room dimension bounds.
	minRoomWidth  = 4
	maxRoomWidth  = 10
	minRoomHeight = 3
	maxRoomHeight = 6

	// roomMargin is the expansion applied to a candidate rectangle before
	// the overlap test, so accepted rooms keep a wall between them.
	roomMargin = 1

	// placementBudget bounds how many candidate rectangles one attempt
	// rolls before giving up on reaching the target room count.
	placementBudget = 120

	// minRooms is the smallest acceptable room count. A single-room level
	// has nothing to connect and is rejected, never accepted silently.
	minRooms = 2
)

// ErrGenerationExhausted reports that the generation retry budget was
// spent without producing a valid level. The caller decides whether to
// abort or fall back; within the budget, retries are internal.
var ErrGenerationExhausted = errors.New("dungeon generation exhausted")

// errAttemptFailed marks a single failed attempt. It triggers a retry
// with a freshly derived seed.
var errAttemptFailed = errors.New("generation attempt failed")

// GeneratorConfig parameterizes level generation.
type GeneratorConfig struct {
	Width  int
	Height int
	// SpawnExclusionRadius keeps spawn candidates this far (Chebyshev)
	// from the entry tile so nothing materializes on top of the player.
	SpawnExclusionRadius int
	// MaxAttempts caps the internal retry loop before
	// ErrGenerationExhausted surfaces.
	MaxAttempts uint
}

// DefaultGeneratorConfig returns the standard generation parameters.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		SpawnExclusionRadius: 4,
		MaxAttempts:          10,
	}
}

// Generator builds dungeon levels. It is stateless between calls; all
// randomness flows from the seed passed to Generate.
type Generator struct {
	cfg GeneratorConfig
	log *logrus.Entry
}

// NewGenerator creates a generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 10
	}
	return &Generator{
		cfg: cfg,
		log: logging.Component("generator"),
	}
}

// Generate produces one internally consistent level for the given depth
// and master seed. Failed attempts are retried with a fresh seed
// derivation; only after MaxAttempts does ErrGenerationExhausted surface.
func (g *Generator) Generate(ctx context.Context, number int, seed int64) (*Level, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	start := time.Now()
	attempt := 0

	level, err := backoff.Retry(ctx, func() (*Level, error) {
		attempt++
		rng := rand.New(rand.NewSource(attemptSeed(seed, number, attempt)))
		lvl, err := g.attempt(rng, number)
		if err != nil {
			g.log.WithFields(logrus.Fields{
				"level":   number,
				"attempt": attempt,
			}).WithError(err).Debug("generation attempt rejected")
			return nil, err
		}
		return lvl, nil
	}, backoff.WithBackOff(&backoff.ZeroBackOff{}), backoff.WithMaxTries(g.cfg.MaxAttempts))

	if err != nil {
		span.SetAttributes(attribute.Int("dungeon.attempts", attempt))
		return nil, fmt.Errorf("level %d after %d attempts: %w", number, attempt, ErrGenerationExhausted)
	}

	level.ID = uuid.New()
	level.Number = number
	level.Seed = seed

	span.SetAttributes(
		attribute.String("dungeon.level_id", level.ID.String()),
		attribute.Int("dungeon.width", g.cfg.Width),
		attribute.Int("dungeon.height", g.cfg.Height),
		attribute.Int("dungeon.room_count", len(level.Rooms)),
		attribute.Int("dungeon.attempts", attempt),
		attribute.Int64("dungeon.generation_us", time.Since(start).Microseconds()),
	)
	g.log.WithFields(logrus.Fields{
		"level":    number,
		"level_id": level.ID,
		"rooms":    len(level.Rooms),
		"attempts": attempt,
	}).Info("level generated")

	return level, nil
}

// attemptSeed derives a per-attempt RNG seed so retries explore a
// different layout instead of re-rolling the same failure.
func attemptSeed(master int64, number, attempt int) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("deepdelve:%d:%d:%d", master, number, attempt)))
}

// targetRoomCount scales the wanted room count mildly with depth.
func (g *Generator) targetRoomCount(number int) int {
	n := 5 + number/2
	if n > 9 {
		n = 9
	}
	return n
}

// attempt runs one full generation pass. Any invariant violation aborts
// the attempt; nothing is patched up after the fact.
func (g *Generator) attempt(rng *rand.Rand, number int) (*Level, error) {
	grid := newGrid(g.cfg.Width, g.cfg.Height)

	rooms := g.placeRooms(rng, number)
	if len(rooms) < minRooms {
		return nil, fmt.Errorf("%w: only %d rooms placed", errAttemptFailed, len(rooms))
	}

	for _, room := range rooms {
		g.carveRoom(grid, room)
	}

	entry := rooms[0].Center()

	for i := 0; i < len(rooms)-1; i++ {
		g.carveCorridor(grid, rooms, i, i+1, entry)
	}

	dist := passableDistances(grid, entry)

	exit, err := g.placeStairs(grid, rooms, entry, dist)
	if err != nil {
		return nil, err
	}

	// Connectivity is recomputed after door and stairs placement: every
	// floor tile must be reachable from entry through non-wall tiles.
	dist = passableDistances(grid, entry)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.At(x, y) == TileFloor && dist[y*grid.Width()+x] < 0 {
				return nil, fmt.Errorf("%w: floor tile (%d,%d) unreachable from entry", errAttemptFailed, x, y)
			}
		}
	}

	spawns := g.collectSpawns(grid, entry, exit)

	return &Level{
		Grid:   grid,
		Entry:  entry,
		Exit:   exit,
		Rooms:  rooms,
		Spawns: spawns,
	}, nil
}

// placeRooms rolls random rectangles and keeps the non-overlapping ones.
// The expanded-margin test guarantees a wall band between any two rooms.
func (g *Generator) placeRooms(rng *rand.Rand, number int) []Room {
	target := g.targetRoomCount(number)
	rooms := make([]Room, 0, target)

	for try := 0; try < placementBudget && len(rooms) < target; try++ {
		w := minRoomWidth + rng.Intn(maxRoomWidth-minRoomWidth+1)
		h := minRoomHeight + rng.Intn(maxRoomHeight-minRoomHeight+1)
		maxX := g.cfg.Width - w - 1
		maxY := g.cfg.Height - h - 1
		if maxX < 1 || maxY < 1 {
			continue
		}
		candidate := Room{
			X:      1 + rng.Intn(maxX),
			Y:      1 + rng.Intn(maxY),
			Width:  w,
			Height: h,
		}

		overlaps := false
		for _, accepted := range rooms {
			if candidate.Expand(roomMargin).Intersects(accepted) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			rooms = append(rooms, candidate)
		}
	}

	return rooms
}

// carveRoom sets the room interior to floor. The border stays wall.
func (g *Generator) carveRoom(grid *Grid, room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			grid.setInterior(x, y, TileFloor)
		}
	}
}

// carveCorridor connects rooms[from] and rooms[to] with an L-shaped,
// one-tile path between their centers. Horizontal-first and
// vertical-first orders are both tried; the order that avoids cutting a
// third room's wall wins, horizontal-first winning ties. If both orders
// cut a third room, the horizontal-first path is carved two tiles wide
// instead of leaving the rooms disconnected.
func (g *Generator) carveCorridor(grid *Grid, rooms []Room, from, to int, entry Point) {
	a := rooms[from].Center()
	b := rooms[to].Center()

	horizontalFirst := corridorCells(a, b, true)
	verticalFirst := corridorCells(a, b, false)

	hCuts := cutsThirdRoom(horizontalFirst, rooms, from, to)
	vCuts := cutsThirdRoom(verticalFirst, rooms, from, to)

	switch {
	case !hCuts:
		g.carvePath(grid, rooms, horizontalFirst, entry, 1)
	case !vCuts:
		g.carvePath(grid, rooms, verticalFirst, entry, 1)
	default:
		g.carvePath(grid, rooms, horizontalFirst, entry, 2)
	}
}

// corridorCells returns the cell sequence of an L-shaped path from a to
// b, horizontal leg first when horizontalFirst is true.
func corridorCells(a, b Point, horizontalFirst bool) []Point {
	cells := make([]Point, 0, abs(b.X-a.X)+abs(b.Y-a.Y)+1)
	if horizontalFirst {
		for x := a.X; x != b.X; x += sign(b.X - a.X) {
			cells = append(cells, Point{X: x, Y: a.Y})
		}
		for y := a.Y; y != b.Y; y += sign(b.Y - a.Y) {
			cells = append(cells, Point{X: b.X, Y: y})
		}
	} else {
		for y := a.Y; y != b.Y; y += sign(b.Y - a.Y) {
			cells = append(cells, Point{X: a.X, Y: y})
		}
		for x := a.X; x != b.X; x += sign(b.X - a.X) {
			cells = append(cells, Point{X: x, Y: b.Y})
		}
	}
	return append(cells, b)
}

// cutsThirdRoom reports whether the path passes through any room other
// than the two being connected, wall border included.
func cutsThirdRoom(path []Point, rooms []Room, from, to int) bool {
	for i, room := range rooms {
		if i == from || i == to {
			continue
		}
		expanded := room.Expand(roomMargin)
		for _, cell := range path {
			if expanded.Contains(cell.X, cell.Y) {
				return true
			}
		}
	}
	return false
}

// carvePath writes a corridor into the grid. A wall cell on a room
// border becomes a door; everything else becomes floor. Entry and stairs
// tiles are never overwritten.
func (g *Generator) carvePath(grid *Grid, rooms []Room, path []Point, entry Point, width int) {
	for _, cell := range path {
		g.carveCell(grid, rooms, cell, entry)
		if width > 1 {
			g.carveCell(grid, rooms, cell.Add(1, 0), entry)
			g.carveCell(grid, rooms, cell.Add(0, 1), entry)
		}
	}
}

func (g *Generator) carveCell(grid *Grid, rooms []Room, cell Point, entry Point) {
	if cell == entry {
		return
	}
	current := grid.At(cell.X, cell.Y)
	if current != TileWall {
		// Stairs, doors, and already-carved floor stay as they are.
		return
	}
	tile := TileFloor
	for _, room := range rooms {
		if room.OnBorder(cell.X, cell.Y) {
			tile = TileDoor
			break
		}
	}
	grid.setInterior(cell.X, cell.Y, tile)
}

// placeStairs marks the exit in the room farthest from entry by BFS path
// length, not straight-line distance. With at least two connected rooms
// the exit can never coincide with entry.
func (g *Generator) placeStairs(grid *Grid, rooms []Room, entry Point, dist []int) (Point, error) {
	best := -1
	bestDist := -1
	for i, room := range rooms {
		c := room.Center()
		if c == entry {
			continue
		}
		d := dist[c.Y*grid.Width()+c.X]
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 || bestDist < 0 {
		return Point{}, fmt.Errorf("%w: no reachable room for stairs", errAttemptFailed)
	}

	exit := rooms[best].Center()
	grid.set(exit.X, exit.Y, TileStairsDown)
	return exit, nil
}

// passableDistances runs a 4-directional BFS from origin over passable
// tiles. The result maps tile index to step count, -1 meaning
// unreachable.
func passableDistances(grid *Grid, origin Point) []int {
	dist := make([]int, grid.Width()*grid.Height())
	for i := range dist {
		dist[i] = -1
	}
	if !grid.IsPassable(origin.X, origin.Y) {
		return dist
	}

	dist[origin.Y*grid.Width()+origin.X] = 0
	queue := []Point{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur.Y*grid.Width()+cur.X]
		for _, delta := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := cur.Add(delta[0], delta[1])
			if !grid.IsPassable(next.X, next.Y) {
				continue
			}
			idx := next.Y*grid.Width() + next.X
			if dist[idx] < 0 {
				dist[idx] = d + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// collectSpawns gathers floor tiles eligible for entity placement. Entry,
// exit, and a Chebyshev radius around entry are excluded. The monster and
// item lists hold the same candidates; suitability is segmented by kind
// only, and final placement policy belongs to the entity layer.
func (g *Generator) collectSpawns(grid *Grid, entry, exit Point) Spawns {
	var candidates []Point
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := Point{X: x, Y: y}
			if grid.At(x, y) != TileFloor {
				continue
			}
			if p == entry || p == exit {
				continue
			}
			if p.Chebyshev(entry) <= g.cfg.SpawnExclusionRadius {
				continue
			}
			candidates = append(candidates, p)
		}
	}

	spawns := Spawns{
		Monsters: make([]Point, len(candidates)),
		Items:    make([]Point, len(candidates)),
	}
	copy(spawns.Monsters, candidates)
	copy(spawns.Items, candidates)
	return spawns
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
