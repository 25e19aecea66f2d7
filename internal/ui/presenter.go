package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/render"
	"github.com/samdwyer/deepdelve/internal/world"
)

// wallGlyphs maps shading level to a density glyph, brightest first.
// Indexes beyond the ramp render as background.
var wallGlyphs = []rune{'█', '▓', '▓', '▒', '░', ':'}

// directionArrows are the eight compass glyphs for the minimap viewer
// marker, starting east and advancing clockwise (y grows downward).
var directionArrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Status carries the one-line HUD fields.
type Status struct {
	Depth    int
	Monsters int
	Items    int
}

// Presenter maps abstract render frames onto the terminal screen. It
// owns the glyph and color policy; the renderer knows nothing about
// either.
type Presenter struct {
	screen   *Screen
	nearWall colorful.Color
	farWall  colorful.Color
	door     colorful.Color
	stairs   tcell.Style
	floor    tcell.Style
}

// NewPresenter creates a presenter for the given screen.
func NewPresenter(screen *Screen) *Presenter {
	near, _ := colorful.Hex("#C8C8C8")
	far, _ := colorful.Hex("#1E1E28")
	door, _ := colorful.Hex("#A07840")
	return &Presenter{
		screen:   screen,
		nearWall: near,
		farWall:  far,
		door:     door,
		stairs:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		floor:    tcell.StyleDefault.Foreground(tcell.ColorDarkGreen),
	}
}

// Draw paints a full frame: wall columns, sprites, minimap, and the
// status line.
func (p *Presenter) Draw(frame *render.Frame, facing float64, status Status) {
	p.screen.Clear()
	width, height := p.screen.Size()
	if width > frame.Columns {
		width = frame.Columns
	}
	viewRows := height - 1 // Last row is the status line

	for c := 0; c < width; c++ {
		p.drawColumn(frame, c, viewRows)
	}
	p.drawSprites(frame, width, viewRows)
	p.drawMinimap(frame.Minimap, facing, width)
	p.drawStatus(status, height-1, width)

	p.screen.Show()
}

// drawColumn renders one vertical slice: ceiling, wall band, floor.
func (p *Presenter) drawColumn(frame *render.Frame, c, viewRows int) {
	if frame.Miss[c] {
		for y := 0; y < viewRows; y++ {
			p.screen.SetContent(c, y, ' ', tcell.StyleDefault)
		}
		return
	}

	wallHeight := frame.WallHeight(c, viewRows)
	glyph, style := p.wallLook(frame, c)

	var top, bottom int
	if frame.Kind[c] == world.TileStairsDown {
		// Stairs read as low steps: a short, bottom-aligned band.
		wallHeight = wallHeight * 3 / 10
		if wallHeight < 1 {
			wallHeight = 1
		}
		bottom = viewRows - 1
		top = bottom - wallHeight
		glyph = '▼'
		style = p.stairs
	} else {
		top = (viewRows - wallHeight) / 2
		bottom = top + wallHeight
	}

	for y := 0; y < viewRows; y++ {
		switch {
		case y < top:
			p.screen.SetContent(c, y, ' ', tcell.StyleDefault)
		case y < bottom:
			p.screen.SetContent(c, y, glyph, style)
		default:
			p.screen.SetContent(c, y, '.', p.floor)
		}
	}
}

// wallLook picks the glyph and color for a wall column from its shading
// level and tile kind. Distance blending runs in Lab space so the ramp
// stays perceptually even.
func (p *Presenter) wallLook(frame *render.Frame, c int) (rune, tcell.Style) {
	shade := int(frame.Shade[c])
	glyph := ':'
	if shade < len(wallGlyphs) {
		glyph = wallGlyphs[shade]
	}

	base := p.nearWall
	if frame.Kind[c] == world.TileDoor {
		base = p.door
		glyph = '+'
	}

	t := frame.Depth[c] / frame.MaxDepth
	if t > 1 {
		t = 1
	}
	blended := base.BlendLab(p.farWall, t)
	return glyph, tcell.StyleDefault.Foreground(toTCell(blended))
}

// drawSprites paints the draw list in order; the list arrives far to
// near, so closer sprites overwrite farther ones where columns overlap.
func (p *Presenter) drawSprites(frame *render.Frame, width, viewRows int) {
	for _, sprite := range frame.Sprites {
		spriteHeight := int(float64(viewRows) / math.Max(sprite.Dist, 0.5) * 0.6)
		if spriteHeight < 1 {
			spriteHeight = 1
		}
		if spriteHeight > viewRows {
			spriteHeight = viewRows
		}
		top := (viewRows - spriteHeight) / 2

		style := tcell.StyleDefault.Bold(true)
		if color, err := gamedata.ParseHexColor(sprite.Color); err == nil {
			style = style.Foreground(color)
		}

		for _, c := range sprite.Visible {
			if c >= width {
				continue
			}
			for y := top; y < top+spriteHeight; y++ {
				p.screen.SetContent(c, y, sprite.Glyph, style)
			}
		}
	}
}

// drawMinimap renders the tile window in the top-right corner with the
// viewer's facing arrow at its center.
func (p *Presenter) drawMinimap(m render.Minimap, facing float64, width int) {
	size := 2*m.Radius + 1
	startX := width - size - 1
	if startX < 0 {
		return
	}
	startY := 1

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y, row := range m.Tiles {
		for x, tile := range row {
			p.screen.SetContent(startX+x, startY+y, tile.Rune(), p.minimapStyle(tile, border))
		}
	}

	arrow := directionArrows[int((facing+math.Pi/8)/(math.Pi/4))%8]
	p.screen.SetContent(startX+m.Radius, startY+m.Radius, arrow,
		tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
}

func (p *Presenter) minimapStyle(tile world.Tile, fallback tcell.Style) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	case world.TileStairsDown:
		return p.stairs
	default:
		return fallback
	}
}

// drawStatus writes the HUD line across the bottom row.
func (p *Presenter) drawStatus(status Status, row, width int) {
	text := fmt.Sprintf("Depth %d | Monsters %d | Items %d | arrows turn, WASD move, > descend, q quit",
		status.Depth, status.Monsters, status.Items)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range text {
		if i >= width {
			break
		}
		p.screen.SetContent(i, row, ch, style)
	}
}

// toTCell converts a colorful color to a 24-bit tcell color.
func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
