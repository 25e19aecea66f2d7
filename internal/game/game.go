// Package game provides the main game loop and session state.
package game

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/logging"
	"github.com/samdwyer/deepdelve/internal/render"
	"github.com/samdwyer/deepdelve/internal/telemetry"
	"github.com/samdwyer/deepdelve/internal/ui"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Game holds the session: the current level, the viewer pose, and the
// terminal front end. The grid inside the level is read-only here; only
// the generator ever writes tiles.
type Game struct {
	cfg       Config
	screen    *ui.Screen
	presenter *ui.Presenter
	generator *world.Generator

	monsterTable *gamedata.MonsterTable
	itemTable    *gamedata.ItemTable
	log          *logrus.Entry

	pose    render.Pose
	state   *levelState
	depth   int
	running bool
}

// New creates a game instance with an initialized terminal screen.
func New(cfg Config) (*Game, error) {
	monsters, err := gamedata.LoadMonsterTable()
	if err != nil {
		return nil, err
	}
	items, err := gamedata.LoadItemTable()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	genCfg := world.DefaultGeneratorConfig()
	genCfg.SpawnExclusionRadius = cfg.SpawnExclusionRadius

	return &Game{
		cfg:          cfg,
		screen:       screen,
		presenter:    ui.NewPresenter(screen),
		generator:    world.NewGenerator(genCfg),
		monsterTable: monsters,
		itemTable:    items,
		log:          logging.Component("game"),
		running:      true,
	}, nil
}

// Run executes the main turn loop until the player quits or a level
// fails to generate after all retries.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.descend(ctx); err != nil {
		return err
	}

	for g.running {
		g.draw()
		if err := g.handleInput(ctx); err != nil {
			return err
		}
	}
	return nil
}

// descend generates the next floor and moves the player to its entry.
func (g *Game) descend(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.descend")
	defer span.End()

	g.depth++
	state, err := g.buildLevel(ctx, g.depth)
	if err != nil {
		// Exhausted generation is fatal for the session; the message
		// identifies the level so the failure is actionable.
		g.log.WithField("depth", g.depth).WithError(err).Error("level generation failed")
		return err
	}

	g.state = state
	g.pose = render.NewPose(state.level.Entry.X, state.level.Entry.Y, 0, g.cfg.FOV)

	span.SetAttributes(
		attribute.Int("game.depth", g.depth),
		attribute.String("game.level_id", state.level.ID.String()),
	)
	return nil
}

// draw renders and presents one frame sized to the current terminal.
func (g *Game) draw() {
	width, _ := g.screen.Size()
	renderer := render.New(render.Config{
		Columns:       width,
		MaxDepth:      g.cfg.MaxDepth,
		ShadeLevels:   6,
		MinimapRadius: 6,
	})

	frame := renderer.Render(g.state.level.Grid, g.pose, g.visibleEntities())
	g.presenter.Draw(frame, g.pose.Angle, ui.Status{
		Depth:    g.depth,
		Monsters: len(g.state.monsters),
		Items:    len(g.state.items),
	})
}

// visibleEntities flattens monsters and items into renderer sprites.
func (g *Game) visibleEntities() []render.Entity {
	entities := make([]render.Entity, 0, len(g.state.monsters)+len(g.state.items))
	for _, m := range g.state.monsters {
		x, y := m.Center()
		entities = append(entities, render.Entity{X: x, Y: y, Glyph: m.Def.GlyphRune(), Color: m.Def.Color})
	}
	for _, item := range g.state.items {
		x, y := item.Center()
		entities = append(entities, render.Entity{X: x, Y: y, Glyph: item.Def.GlyphRune(), Color: item.Def.Color})
	}
	return entities
}

// handleInput blocks on the next terminal event and processes it.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent maps keys to turn commands: arrows rotate a quarter
// turn, WASD moves relative to facing, '>' descends on the stairs.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return nil

	case tcell.KeyLeft:
		g.pose = g.pose.Turn(-math.Pi / 2)
		g.endTurn(ctx)
	case tcell.KeyRight:
		g.pose = g.pose.Turn(math.Pi / 2)
		g.endTurn(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'w':
			g.tryMove(ctx, g.pose.Angle)
		case 's':
			g.tryMove(ctx, g.pose.Angle+math.Pi)
		case 'a':
			g.tryMove(ctx, g.pose.Angle-math.Pi/2)
		case 'd':
			g.tryMove(ctx, g.pose.Angle+math.Pi/2)
		case '>':
			return g.tryDescend(ctx)
		}
	}
	return nil
}

// tryMove steps the player one tile in the given direction if the
// target is passable and unoccupied, then runs the monster turn.
func (g *Game) tryMove(ctx context.Context, direction float64) {
	px, py := g.pose.Tile()
	dx := int(math.Round(math.Cos(direction)))
	dy := int(math.Round(math.Sin(direction)))
	target := world.Point{X: px + dx, Y: py + dy}

	grid := g.state.level.Grid
	if !grid.IsPassable(target.X, target.Y) {
		return
	}
	if g.state.monsterAt(target) != nil {
		// Bumping a monster costs the turn but does not move.
		g.endTurn(ctx)
		return
	}

	g.pose = g.pose.MoveTo(target.X, target.Y)
	if item := g.state.removeItemAt(target); item != nil {
		g.log.WithFields(logrus.Fields{
			"item":  item.Def.ID,
			"depth": g.depth,
		}).Info("item picked up")
	}
	g.endTurn(ctx)
}

// tryDescend takes the stairs when the player stands on them.
func (g *Game) tryDescend(ctx context.Context) error {
	px, py := g.pose.Tile()
	if g.state.level.Grid.At(px, py) != world.TileStairsDown {
		return nil
	}
	return g.descend(ctx)
}

// endTurn runs everything that happens after a player action. Turns
// are the tracing unit here; per-frame spans would be far too hot.
func (g *Game) endTurn(ctx context.Context) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.turn")
	defer span.End()

	g.stepMonsters()

	px, py := g.pose.Tile()
	span.SetAttributes(
		attribute.Int("game.depth", g.depth),
		attribute.Int("game.player_x", px),
		attribute.Int("game.player_y", py),
	)
}
