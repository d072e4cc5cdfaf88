package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

// TileCols is the terminal width of one tile; cells are roughly twice as tall as wide
const TileCols = 2

// Overlay is a centered menu panel drawn over the frame
type Overlay struct {
	Title    string
	Options  []string
	Selected int
	Footer   string
}

// TerminalRenderer draws a session top-down around the player. Tiles outside
// the light radius stay dark.
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// Resize updates the drawable area after a terminal resize
func (r *TerminalRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Viewport returns the visible map area in tiles
func (r *TerminalRenderer) Viewport() (cols, rows int) {
	cols = r.width / TileCols
	rows = r.height - constants.HUDHeight
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// CameraOrigin returns the first visible index along one axis so that focus is
// centered, clamped to keep the view inside [0, extent)
func CameraOrigin(focus, view, extent int) int {
	if extent <= view {
		return 0
	}
	o := focus - view/2
	if o < 0 {
		return 0
	}
	if o > extent-view {
		return extent - view
	}
	return o
}

// camera maps storage rows/cols to screen cells for one frame
type camera struct {
	g          *grid.Grid
	row0, col0 int
	rows, cols int
}

func (c camera) screen(t grid.Tile) (x, y int, ok bool) {
	row, col := c.g.RowCol(t)
	row -= c.row0
	col -= c.col0
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return 0, 0, false
	}
	return col * TileCols, constants.HUDHeight + row, true
}

// RenderFrame draws the map, entities and HUD, then the overlay if any.
// A nil session draws only the overlay.
func (r *TerminalRenderer) RenderFrame(sess *engine.Session, overlay *Overlay) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', base)

	if sess != nil {
		cam := r.camera(sess)
		r.drawMap(sess, cam, base)
		r.drawEntities(sess, cam, base)
		r.drawHUD(sess, base)
	}
	if overlay != nil {
		r.drawOverlay(overlay, base)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) camera(sess *engine.Session) camera {
	g := sess.Grid
	cols, rows := r.Viewport()
	prow, pcol := g.RowCol(g.WorldToTile(sess.Player.Pos))
	return camera{
		g:    g,
		row0: CameraOrigin(prow, rows, g.Height()),
		col0: CameraOrigin(pcol, cols, g.Width()),
		rows: min(rows, g.Height()),
		cols: min(cols, g.Width()),
	}
}

func lit(p *components.Player, at vmath.Vec2) bool {
	return vmath.Dist(p.Pos, at) <= p.Light.Radius
}

func (r *TerminalRenderer) drawMap(sess *engine.Session, cam camera, base tcell.Style) {
	g := sess.Grid
	p := &sess.Player
	wall := base.Foreground(RgbWall)
	floor := base.Foreground(RgbFloor)
	if p.Light.On {
		floor = base.Foreground(RgbFloorLit)
	}

	for sy := 0; sy < cam.rows; sy++ {
		for sx := 0; sx < cam.cols; sx++ {
			t := g.TileAt(cam.row0+sy, cam.col0+sx)
			if !lit(p, g.TileCenter(t)) {
				continue
			}
			x, y := sx*TileCols, constants.HUDHeight+sy
			if g.At(t) == grid.Wall {
				r.setTile(x, y, constants.GlyphWall, constants.GlyphWall, wall)
			} else {
				r.setTile(x, y, constants.GlyphFloor, ' ', floor)
			}
		}
	}
}

func (r *TerminalRenderer) drawEntities(sess *engine.Session, cam camera, base tcell.Style) {
	g := sess.Grid
	p := &sess.Player

	put := func(at vmath.Vec2, ch rune, style tcell.Style) {
		if !lit(p, at) {
			return
		}
		if x, y, ok := cam.screen(g.WorldToTile(at)); ok {
			r.setTile(x, y, ch, ' ', style)
		}
	}

	for i := range sess.Traps {
		put(sess.Traps[i].Bounds.Center(), constants.GlyphTrap, base.Foreground(RgbTrap))
	}
	for i := range sess.Items {
		it := &sess.Items[i]
		put(it.Bounds.Center(), itemGlyph(it.Type), base.Foreground(ItemColor(it.Type.String())))
	}
	for i := range sess.Generators {
		gen := &sess.Generators[i]
		color := RgbGeneratorIdle
		if gen.Complete() {
			color = RgbGeneratorDone
		}
		put(gen.Bounds.Center(), constants.GlyphGenerator, base.Foreground(color))
	}
	for i := range sess.Doors {
		d := &sess.Doors[i]
		ch, color := constants.GlyphDoor, RgbDoorLocked
		switch {
		case d.Open():
			ch, color = constants.GlyphDoorOpen, RgbDoorOpen
		case d.Openable:
			color = RgbDoorOpenable
		}
		put(d.Bounds.Center(), ch, base.Foreground(color))
	}
	for i := range sess.Drones {
		put(sess.Drones[i].Pos, constants.GlyphDrone, base.Foreground(RgbDrone).Bold(true))
	}

	color := RgbPlayer
	if p.Shielded() {
		color = RgbPlayerShielded
	}
	if x, y, ok := cam.screen(g.WorldToTile(p.Pos)); ok {
		r.setTile(x, y, constants.GlyphPlayer, ' ', base.Foreground(color).Bold(true))
	}
}

func itemGlyph(t components.ItemType) rune {
	switch t {
	case components.ItemShield:
		return constants.GlyphShield
	case components.ItemSpeedBoost:
		return constants.GlyphSpeed
	case components.ItemBatteryRefill:
		return constants.GlyphBattery
	default:
		return '?'
	}
}

// drawHUD renders battery, objectives and effects on row 0, inventory and the
// active interaction on row 1
func (r *TerminalRenderer) drawHUD(sess *engine.Session, base tcell.Style) {
	p := &sess.Player
	text := base.Foreground(RgbStatusBar)

	level := p.Battery / constants.BatteryMax
	x := r.drawText(0, 0, "BAT ", text)
	x = r.drawBar(x, 0, level, BatteryColor(level), base)
	status := fmt.Sprintf(" %3.0f%%  GEN %d/%d", p.Battery, sess.GeneratorsComplete(), len(sess.Generators))
	if p.Light.Lockout > 0 {
		status += "  LIGHT OUT"
	}
	if p.Shielded() {
		status += fmt.Sprintf("  SHIELD %.1fs", p.ShieldRemaining.Seconds())
	}
	if p.Boosted() {
		status += fmt.Sprintf("  SPEED %.1fs", p.SpeedRemaining.Seconds())
	}
	r.drawText(x, 0, status, text)

	slots := make([]string, len(p.Inventory))
	for i, it := range p.Inventory {
		name := "-"
		if it != components.ItemNone {
			name = it.String()
		}
		slots[i] = fmt.Sprintf("[%d]%s", i+1, name)
	}
	x = r.drawText(0, 1, strings.Join(slots, " "), text)

	if label, ratio, ok := interaction(sess); ok {
		x = r.drawText(x, 1, "  "+label+" ", text)
		r.drawBar(x, 1, ratio, RgbGeneratorDone, base)
	}
}

// interaction describes the locked target for the HUD
func interaction(sess *engine.Session) (string, float64, bool) {
	lock := sess.Player.Lock
	switch lock.State {
	case components.LockGenerator:
		if lock.Target < len(sess.Generators) {
			return "REPAIR", sess.Generators[lock.Target].Progress.Ratio(), true
		}
	case components.LockDoor:
		if lock.Target < len(sess.Doors) {
			return "OPEN", sess.Doors[lock.Target].Progress.Ratio(), true
		}
	}
	return "", 0, false
}

func (r *TerminalRenderer) drawBar(x, y int, ratio float64, fill tcell.Color, base tcell.Style) int {
	filled := int(ratio * constants.ProgressBarWidth)
	for i := 0; i < constants.ProgressBarWidth; i++ {
		color := RgbBarEmpty
		if i < filled {
			color = fill
		}
		r.screen.SetContent(x+i, y, '█', nil, base.Foreground(color))
	}
	return x + constants.ProgressBarWidth
}

func (r *TerminalRenderer) drawOverlay(o *Overlay, base tcell.Style) {
	lines := 2 + len(o.Options)
	if o.Footer != "" {
		lines += 2
	}
	y := (r.height - lines) / 2
	if y < 0 {
		y = 0
	}

	r.drawCentered(y, o.Title, base.Foreground(RgbMenuText).Bold(true))
	y += 2
	for i, opt := range o.Options {
		style := base.Foreground(RgbMenuText)
		label := "  " + opt + "  "
		if i == o.Selected {
			style = base.Foreground(RgbMenuSelect).Bold(true)
			label = "> " + opt + " <"
		}
		r.drawCentered(y, label, style)
		y++
	}
	if o.Footer != "" {
		r.drawCentered(y+1, o.Footer, base.Foreground(RgbFloorLit))
	}
}

func (r *TerminalRenderer) drawCentered(y int, s string, style tcell.Style) {
	x := (r.width - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, s, style)
}

// drawText writes s from x and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func (r *TerminalRenderer) setTile(x, y int, left, right rune, style tcell.Style) {
	r.screen.SetContent(x, y, left, nil, style)
	r.screen.SetContent(x+1, y, right, nil, style)
}
